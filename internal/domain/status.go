package domain

import "strings"

// ParseDocumentStatus coerces arbitrary status strings into a known document status.
func ParseDocumentStatus(input string) (DocumentStatus, bool) {
	status := DocumentStatus(strings.ToLower(strings.TrimSpace(input)))
	switch status {
	case DocumentDrafted, DocumentPublished, DocumentArchived, DocumentDeleted:
		return status, true
	default:
		return "", false
	}
}

// ParsePermission coerces arbitrary permission strings into a known permission.
func ParsePermission(input string) (Permission, bool) {
	permission := Permission(strings.ToLower(strings.TrimSpace(input)))
	switch permission {
	case PermissionReadWrite, PermissionRead, PermissionNoAccess:
		return permission, true
	default:
		return "", false
	}
}

// ReleaseTargets enumerates the revision statuses an active fork may be released to.
var ReleaseTargets = map[RevisionStatus]bool{
	RevisionPublished: true,
	RevisionArchived:  true,
	RevisionDeleted:   true,
}

// CanRelease reports whether a revision in the given status can move to the target.
// Only an active fork or the working draft of an unpublished document ever moves.
func CanRelease(from, to RevisionStatus) bool {
	switch from {
	case RevisionForked, RevisionDrafted:
		return ReleaseTargets[to]
	default:
		return false
	}
}

// DocumentCanTransition reports whether a document may move between two statuses.
func DocumentCanTransition(from, to DocumentStatus) bool {
	switch from {
	case DocumentDrafted:
		return to == DocumentPublished || to == DocumentArchived || to == DocumentDeleted
	case DocumentPublished:
		return to == DocumentPublished || to == DocumentArchived || to == DocumentDeleted
	case DocumentArchived:
		return to == DocumentDeleted
	default:
		return false
	}
}
