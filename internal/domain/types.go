package domain

// DocumentStatus represents lifecycle states for documents.
type DocumentStatus string

const (
	// DocumentDrafted indicates a document still under preparation
	DocumentDrafted DocumentStatus = "drafted"
	// DocumentPublished identifies a document available to readers
	DocumentPublished DocumentStatus = "published"
	// DocumentArchived marks a document retained for history but hidden from listings
	DocumentArchived DocumentStatus = "archived"
	// DocumentDeleted marks a soft-deleted document
	DocumentDeleted DocumentStatus = "deleted"
)

// RevisionStatus represents lifecycle states for document revisions.
type RevisionStatus string

const (
	// RevisionDrafted is the working revision of an unpublished document
	RevisionDrafted RevisionStatus = "drafted"
	// RevisionForked marks the single in-flight edit of a published document
	RevisionForked RevisionStatus = "forked"
	// RevisionPublished marks a revision whose content was promoted to the document
	RevisionPublished RevisionStatus = "published"
	// RevisionArchived marks a revision released when its document was archived
	RevisionArchived RevisionStatus = "archived"
	// RevisionDeleted marks a revision released when its document was deleted
	RevisionDeleted RevisionStatus = "deleted"
)

// Permission represents access levels granted by a collection to non-owners.
type Permission string

const (
	// PermissionReadWrite lets any user read and edit collection members
	PermissionReadWrite Permission = "read_write"
	// PermissionRead lets any user read collection members
	PermissionRead Permission = "read"
	// PermissionNoAccess hides the collection from everyone but its creator
	PermissionNoAccess Permission = "no_access"
)
