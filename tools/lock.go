package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// A LockStore persists the association between a service name and the job
// currently running against it. The presence of a record is what prevents
// duplicate submissions, including across process restarts; records are
// advisory and cooperating clients re-validate them against the remote
// service before honoring them.
type LockStore interface {
	// Read returns the job id recorded for the service, if any.
	Read(service string) (jobID string, ok bool, err error)

	// Write records the job id for the service, replacing any previous record.
	Write(service, jobID string) error

	// Remove deletes the record for the service. Removing a service that
	// holds no record is not an error.
	Remove(service string) error
}

// FileLockStore keeps one <service>.lock file per service in a directory,
// whose content is the job id. This is the durable store used by default:
// a crashed process leaves its lock file behind, and the next client to
// inspect it clears it once the service reports the job is no longer running.
type FileLockStore struct {
	dir string
}

// NewFileLockStore returns a store writing lock files under dir. The
// directory is created on first write if it does not exist.
func NewFileLockStore(dir string) *FileLockStore {
	return &FileLockStore{dir: dir}
}

func (s *FileLockStore) path(service string) string {
	return filepath.Join(s.dir, service+".lock")
}

func (s *FileLockStore) Read(service string) (string, bool, error) {
	raw, err := os.ReadFile(s.path(service))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read lock file: %v", err)
	}
	return strings.TrimSpace(string(raw)), true, nil
}

func (s *FileLockStore) Write(service, jobID string) error {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return fmt.Errorf("create lock dir: %v", err)
	}
	if err := os.WriteFile(s.path(service), []byte(jobID), 0644); err != nil {
		return fmt.Errorf("write lock file: %v", err)
	}
	return nil
}

func (s *FileLockStore) Remove(service string) error {
	err := os.Remove(s.path(service))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %v", err)
	}
	return nil
}

// MemoryLockStore keeps lock records in memory. It offers no cross-process
// exclusion and is meant for tests and short-lived tooling.
type MemoryLockStore struct {
	mu   sync.Mutex
	jobs map[string]string
}

func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{jobs: make(map[string]string)}
}

func (s *MemoryLockStore) Read(service string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobID, ok := s.jobs[service]
	return jobID, ok, nil
}

func (s *MemoryLockStore) Write(service, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[service] = jobID
	return nil
}

func (s *MemoryLockStore) Remove(service string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, service)
	return nil
}
