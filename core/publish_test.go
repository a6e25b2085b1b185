package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	var db, index, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var edition = mustEdition(t, db, artefact, alice, []Part{{Title: "Overview", Slug: "overview", Body: "<p>Lots of info</p>"}})
	setState(t, db, edition, Ready)

	require.NoError(t, db.Publish(edition, alice, "go live"))
	assert.Equal(t, Published, edition.State())
	assert.Equal(t, "alice", edition.Publisher())

	published, err := edition.LatestStatusAction(ActionPublish)
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, "go live", published.Comment())
	assert.NotEmpty(t, published.Diff())

	require.Len(t, index.indexed, 1)
	var doc = index.indexed[0]
	assert.Equal(t, "Childcare", doc.Title)
	assert.Equal(t, "/childcare", doc.Link)
	assert.Equal(t, "answer", doc.Format)
	assert.Equal(t, "Lots of info", doc.IndexableContent) // markup stripped
	assert.Equal(t, "Driving", doc.Section)

	assert.Equal(t, []int{edition.ID()}, api.published)
}

func TestPublishRequiresReady(t *testing.T) {
	var db, index, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var edition = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, edition, Draft)

	assert.False(t, edition.CanPublish())
	assert.ErrorIs(t, db.Publish(edition, alice, ""), ErrInvalidTransition)
	assert.Equal(t, Draft, edition.State())
	assert.Empty(t, index.indexed)
	assert.Empty(t, api.published)
}

func TestPublishArchivesLiveSibling(t *testing.T) {
	var db, _, _ = newTestDB()
	var alice = mustUser(t, db, "alice")
	var bob = mustUser(t, db, "bob")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var first = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, first, Ready)
	require.NoError(t, db.Publish(first, alice, ""))

	second, err := db.CloneEdition(first)
	require.NoError(t, err)
	third, err := db.CloneEdition(second)
	require.NoError(t, err)
	setState(t, db, third, Ready)

	require.NoError(t, db.Publish(third, bob, ""))

	assert.Equal(t, Published, third.State())
	assert.Equal(t, Archived, first.State())
	assert.Equal(t, "bob", first.Archiver())
	assert.Equal(t, Draft, second.State()) // only the live sibling is archived

	archived, err := first.LatestStatusAction(ActionArchive)
	require.NoError(t, err)
	require.NotNil(t, archived)
	assert.Equal(t, "bob", archived.Requester())

	// at most one published edition per artefact
	editions, err := artefact.Editions()
	require.NoError(t, err)
	var publishedCount = 0
	for _, e := range editions {
		if e.State() == Published {
			publishedCount++
		}
	}
	assert.Equal(t, 1, publishedCount)

	live, err := artefact.PublishedEdition()
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, third.ID(), live.ID())
}

func TestPublishConflict(t *testing.T) {
	var db, index, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var older = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, older, Ready)
	newer, err := db.CloneEdition(older)
	require.NoError(t, err)
	setState(t, db, newer, Ready)
	require.NoError(t, db.Publish(newer, alice, ""))
	index.indexed = nil
	api.published = nil

	// a higher version is already live, the stale edition loses
	assert.ErrorIs(t, db.Publish(older, alice, ""), ErrPublishConflict)
	assert.Equal(t, Ready, older.State())
	assert.Equal(t, Published, newer.State())
	assert.Empty(t, index.indexed)
	assert.Empty(t, api.published)
}

func TestPublishRecordsDiff(t *testing.T) {
	var db, _, _ = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var first = mustEdition(t, db, artefact, alice, []Part{
		{Title: "Part One", Body: "Never gonna give you up"},
		{Title: "Part Two", Body: "NYAN NYAN NYAN NYAN"},
	})
	setState(t, db, first, Ready)
	require.NoError(t, db.Publish(first, alice, ""))

	// the first publish has nothing to diff against
	published, err := first.LatestStatusAction(ActionPublish)
	require.NoError(t, err)
	assert.Equal(t, "# Part One\n\nNever gonna give you up\n\n# Part Two\n\nNYAN NYAN NYAN NYAN", published.Diff())

	second, err := db.CloneEdition(first)
	require.NoError(t, err)
	require.NoError(t, db.EditContent(second, second.Title(), []Part{
		{Title: "Changed Title", Body: "Never gonna let you down"},
		{Title: "Part Two", Body: "NYAN NYAN NYAN NYAN"},
	}))
	setState(t, db, second, Ready)
	require.NoError(t, db.Publish(second, alice, ""))

	published, err = second.LatestStatusAction(ActionPublish)
	require.NoError(t, err)
	assert.Equal(t,
		`{"# Part One" >> "# Changed Title"}`+"\n\n"+
			`{"Never gonna give you up" >> "Never gonna let you down"}`+"\n\n"+
			"# Part Two\n\nNYAN NYAN NYAN NYAN",
		published.Diff())
}

func TestEmergencyPublish(t *testing.T) {
	var db, _, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var edition = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, edition, Draft)

	assert.False(t, edition.CanPublish())
	assert.True(t, edition.CanEmergencyPublish())

	require.NoError(t, db.EmergencyPublish(edition, alice, "hotfix"))
	assert.Equal(t, Published, edition.State())

	// an emergency publish records an ordinary publish action
	published, err := edition.LatestStatusAction(ActionPublish)
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, "hotfix", published.Comment())
	assert.Equal(t, []int{edition.ID()}, api.published)

	assert.False(t, edition.CanEmergencyPublish())
}

func TestPublishExternalFailure(t *testing.T) {
	var db, index, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var edition = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, edition, Ready)

	index.fail = errors.New("search index down")

	var err = db.Publish(edition, alice, "")
	var sync *SyncError
	require.ErrorAs(t, err, &sync)
	require.Len(t, sync.Errs, 1)

	// the local transition stands, and the other collaborator was still called
	assert.Equal(t, Published, edition.State())
	assert.Equal(t, []int{edition.ID()}, api.published)
}

func TestBypassPublishLiveAndDraft(t *testing.T) {
	var db, _, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var live = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, live, Published)
	var draft = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, draft, Draft)

	require.NoError(t, db.BypassPublish(artefact))

	assert.Equal(t, []int{artefact.ID()}, api.discarded)
	assert.Equal(t, []int{live.ID()}, api.republished)
	assert.Equal(t, []int{draft.ID()}, api.updated)

	// no workflow transition happened
	assert.Equal(t, Published, live.State())
	assert.Equal(t, Draft, draft.State())
}

func TestBypassPublishLiveOnly(t *testing.T) {
	var db, _, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var live = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, live, Published)

	require.NoError(t, db.BypassPublish(artefact))

	assert.Empty(t, api.discarded)
	assert.Equal(t, []int{live.ID()}, api.republished)
	assert.Empty(t, api.updated)
}

func TestBypassPublishArchivedOnly(t *testing.T) {
	var db, _, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var edition = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, edition, Archived)

	require.NoError(t, db.BypassPublish(artefact))

	assert.Empty(t, api.discarded)
	assert.Empty(t, api.republished)
	assert.Empty(t, api.updated)
}

func TestBypassPublishNilArtefact(t *testing.T) {
	var db, _, api = newTestDB()

	require.NoError(t, db.BypassPublish(nil))

	assert.Empty(t, api.discarded)
	assert.Empty(t, api.republished)
	assert.Empty(t, api.updated)
}

func TestBypassPublishPartialFailure(t *testing.T) {
	var db, _, api = newTestDB()
	var alice = mustUser(t, db, "alice")
	var artefact = mustArtefact(t, db, "childcare", "Childcare")
	var live = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, live, Published)
	var draft = mustEdition(t, db, artefact, alice, nil)
	setState(t, db, draft, Draft)

	api.fail = errors.New("publishing api down")

	var err = db.BypassPublish(artefact)
	var sync *SyncError
	require.ErrorAs(t, err, &sync)
	// discard, republish and update are attempted independently
	assert.Len(t, sync.Errs, 3)
}
