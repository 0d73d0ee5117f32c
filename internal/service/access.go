package service

import "github.com/filekeeper/go-files-manager/internal/domain"

// anonymousID is the identity of an unauthenticated requester. It never
// matches a real owner, so anonymous reads only pass the public branch.
const anonymousID int64 = 0

// canRead decides read permission: public records are readable by anyone,
// private records only by their owner. Callers report a denial as not-found
// so private ids cannot be probed.
func canRead(requester int64, rec *domain.FileRecord) bool {
	if rec.IsPublic {
		return true
	}
	return requester != anonymousID && requester == rec.OwnerID
}
