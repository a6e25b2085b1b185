package core

import "sync"

// CoreDB bundles the storage interfaces and the external collaborators.
// Collaborators are injected at assembly time, there are no process-wide
// singletons.
type CoreDB struct {
	ActionDB
	ArtefactDB
	EditionDB
	UserDB

	SearchIndex   SearchIndex
	PublishingAPI PublishingAPI

	mu            sync.Mutex
	artefactLocks map[int]*sync.Mutex
}

// lockArtefact serializes operations which must see a consistent edition
// family, like the no-sibling-published check of a publish. The returned
// function unlocks.
func (c *CoreDB) lockArtefact(artefactID int) func() {

	c.mu.Lock()
	if c.artefactLocks == nil {
		c.artefactLocks = make(map[int]*sync.Mutex)
	}
	lock, ok := c.artefactLocks[artefactID]
	if !ok {
		lock = &sync.Mutex{}
		c.artefactLocks[artefactID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
