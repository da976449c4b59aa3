package syncer

// HoldLockForTest acquires the run lock so tests can assert contention.
func (s *Syncer) HoldLockForTest() (func(), error) {
	return s.acquireLock()
}
