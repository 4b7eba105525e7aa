package seed

import (
	"testing"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewSeederDefaults(t *testing.T) {
	s := NewSeeder(nil, Options{})
	assert.Equal(t, 15, s.opts.NumUsers)
	assert.Equal(t, 4, s.opts.VideosPerUser)

	s = NewSeeder(nil, Options{NumUsers: 3, VideosPerUser: 1})
	assert.Equal(t, 3, s.opts.NumUsers)
	assert.Equal(t, 1, s.opts.VideosPerUser)
}

func TestDedupeVideos(t *testing.T) {
	a := &models.Video{ID: 1}
	b := &models.Video{ID: 2}

	out := dedupeVideos([]*models.Video{a, b, a, b, a})
	assert.Len(t, out, 2)
	assert.Equal(t, uint(1), out[0].ID)
	assert.Equal(t, uint(2), out[1].ID)

	assert.Empty(t, dedupeVideos(nil))
}
