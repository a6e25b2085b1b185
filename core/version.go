package core

import "fmt"

// CloneEdition creates a new draft as the lineage descendant of the source
// edition: version number incremented, parts deep-copied, action log empty,
// assignment cleared. Mutating the clone's content never affects the source.
func (c *CoreDB) CloneEdition(source *Edition) (*Edition, error) {

	var unlock = c.lockArtefact(source.ArtefactID())
	defer unlock()

	// re-fetch, the source might have been destroyed concurrently
	if _, err := c.EditionDB.GetEdition(source.ID()); err != nil {
		return nil, fmt.Errorf("clone edition %d: %w", source.ID(), err)
	}

	artefact, err := source.Artefact()
	if err != nil {
		return nil, err
	}

	latest, err := artefact.LatestEdition()
	if err != nil {
		return nil, err
	}

	parts, err := source.Parts()
	if err != nil {
		return nil, err
	}
	var copied = make([]Part, len(parts))
	copy(copied, parts)

	dbEdition, err := c.EditionDB.InsertEdition(artefact.ID(), latest.VersionNo()+1, Draft, source.Title(), copied)
	if err != nil {
		return nil, err
	}

	return &Edition{DBEdition: dbEdition, db: c, artefact: artefact}, nil
}
