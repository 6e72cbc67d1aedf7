package services

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/models"
)

// stubTagRepository scripts per-call results so the resolver's conflict
// handling can be driven without a second goroutine.
type stubTagRepository struct {
	findResults []func() (*models.Tag, error)
	createErr   error

	findCalls   int
	createCalls int
	addedUsers  []uint64
}

func (r *stubTagRepository) FindByName(name string) (*models.Tag, error) {
	call := r.findCalls
	r.findCalls++
	if call >= len(r.findResults) {
		return nil, errors.New("unexpected FindByName call")
	}
	return r.findResults[call]()
}

func (r *stubTagRepository) Create(tag *models.Tag) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	tag.ID = 1
	return nil
}

func (r *stubTagRepository) FindByNames(names []string) ([]models.Tag, error) {
	return nil, nil
}

func (r *stubTagRepository) AddUser(tagID, userID uint64) error {
	r.addedUsers = append(r.addedUsers, userID)
	return nil
}

func TestNoteService_FindOrCreateTags_ConcurrentCreate(t *testing.T) {
	// A concurrent request wins the insert between the miss and the create;
	// the unique index turns the lost race into a constraint error and the
	// resolver re-fetches the winner's row.
	winner := &models.Tag{ID: 42, Name: "racy"}
	tagRepo := &stubTagRepository{
		findResults: []func() (*models.Tag, error){
			func() (*models.Tag, error) { return nil, gorm.ErrRecordNotFound },
			func() (*models.Tag, error) { return winner, nil },
		},
		createErr: errors.New("UNIQUE constraint failed: tags.name"),
	}

	svc := NewNoteService(nil, nil, tagRepo, nil, zerolog.Nop())

	ids, err := svc.findOrCreateTags([]string{"racy"}, 7)
	require.NoError(t, err)
	require.Equal(t, []uint64{42}, ids)
	require.Equal(t, 1, tagRepo.createCalls)
	require.Equal(t, 2, tagRepo.findCalls)
	require.Equal(t, []uint64{7}, tagRepo.addedUsers)
}

func TestNoteService_FindOrCreateTags_ConflictWithoutWinner(t *testing.T) {
	// When the create fails and no row shows up on re-fetch, the original
	// create error surfaces.
	createErr := errors.New("UNIQUE constraint failed: tags.name")
	tagRepo := &stubTagRepository{
		findResults: []func() (*models.Tag, error){
			func() (*models.Tag, error) { return nil, gorm.ErrRecordNotFound },
			func() (*models.Tag, error) { return nil, gorm.ErrRecordNotFound },
		},
		createErr: createErr,
	}

	svc := NewNoteService(nil, nil, tagRepo, nil, zerolog.Nop())

	_, err := svc.findOrCreateTags([]string{"racy"}, 7)
	require.ErrorIs(t, err, createErr)
	require.Empty(t, tagRepo.addedUsers)
}

func TestValidateNoteFields_TitleLengthInRunes(t *testing.T) {
	// 15 characters, more than 16 bytes once encoded.
	require.NoError(t, validateNoteFields("résumé détaillé", "content"))

	require.ErrorIs(t, validateNoteFields("", "content"), ErrNoteTitleInvalid)
	require.ErrorIs(t, validateNoteFields("seventeen chars !", "content"), ErrNoteTitleInvalid)
	require.ErrorIs(t, validateNoteFields("title", ""), ErrNoteContentEmpty)
}
