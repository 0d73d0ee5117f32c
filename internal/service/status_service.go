package service

import (
	"context"

	"github.com/filekeeper/go-files-manager/internal/port"
)

// AliveCheck probes one backing dependency.
type AliveCheck func(ctx context.Context) bool

// StatusService reports backend liveness and collection counts.
type StatusService struct {
	users      port.UserRepository
	files      port.FileRepository
	redisAlive AliveCheck
	dbAlive    AliveCheck
}

// Ensure StatusService implements port.StatusReporter.
var _ port.StatusReporter = (*StatusService)(nil)

func NewStatusService(users port.UserRepository, files port.FileRepository, redisAlive, dbAlive AliveCheck) *StatusService {
	return &StatusService{users: users, files: files, redisAlive: redisAlive, dbAlive: dbAlive}
}

// Status reports whether Redis and the database are reachable.
func (s *StatusService) Status(ctx context.Context) (redisOK, dbOK bool) {
	return s.redisAlive(ctx), s.dbAlive(ctx)
}

// Stats returns the number of users and file records.
func (s *StatusService) Stats(ctx context.Context) (users, files int64, err error) {
	users, err = s.users.CountUsers(ctx)
	if err != nil {
		return 0, 0, err
	}
	files, err = s.files.CountFiles(ctx)
	if err != nil {
		return 0, 0, err
	}
	return users, files, nil
}
