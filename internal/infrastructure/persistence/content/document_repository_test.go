package content

import (
	"database/sql"
	"testing"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *DocumentRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	require.NoError(t, err)

	repo := NewDocumentRepository(db, logger)
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func sampleDocument(id, slug string) *document.Document {
	now := time.Now().UTC().Truncate(time.Second)
	return &document.Document{
		ID:    id,
		Title: "Sample",
		Slug:  slug,
		Nodes: []document.Node{
			document.Element("paragraph", nil, document.Text("hello", nil)),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)

	doc := sampleDocument("doc-1", "sample")
	require.NoError(t, repo.Create(doc))

	got, err := repo.GetByID("doc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sample", got.Title)
	assert.Equal(t, "sample", got.Slug)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, "paragraph", got.Nodes[0].Type)
	assert.Equal(t, doc.CreatedAt.Format(time.RFC3339), got.CreatedAt.Format(time.RFC3339))

	bySlug, err := repo.GetBySlug("sample")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, "doc-1", bySlug.ID)
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDuplicateSlugRejected(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(sampleDocument("doc-1", "same")))
	assert.Error(t, repo.Create(sampleDocument("doc-2", "same")))
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)

	doc := sampleDocument("doc-1", "sample")
	require.NoError(t, repo.Create(doc))

	doc.Title = "Renamed"
	doc.Nodes = append(doc.Nodes, document.Element("divider", nil))
	doc.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(doc))

	got, err := repo.GetByID("doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Len(t, got.Nodes, 2)
}

func TestUpdateMissingReturnsNoRows(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Update(sampleDocument("ghost", "ghost"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListOrdersByTitle(t *testing.T) {
	repo := newTestRepository(t)

	zebra := sampleDocument("doc-z", "zebra")
	zebra.Title = "Zebra"
	alpha := sampleDocument("doc-a", "alpha")
	alpha.Title = "Alpha"
	require.NoError(t, repo.Create(zebra))
	require.NoError(t, repo.Create(alpha))

	docs, err := repo.List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Alpha", docs[0].Title)
	assert.Equal(t, "Zebra", docs[1].Title)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(sampleDocument("doc-1", "sample")))
	require.NoError(t, repo.Delete("doc-1"))

	got, err := repo.GetByID("doc-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
