// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	opts Options
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano())), opts: opts}
}

// pastTime returns a timestamp spread over the last opts.MaxDays days so
// seeded content does not all land on "just now".
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		FullName:   gofakeit.Name(),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/cover-%s/1280/320", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateVideo constructs and persists a sample video owned by the given user.
func (f *Factory) CreateVideo(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	video := &models.Video{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		VideoFile:   fmt.Sprintf("https://media.videotube.dev/videos/%s.mp4", gofakeit.UUID()),
		Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s/640/360", gofakeit.UUID()),
		Duration:    float64(f.rand.Intn(1800)) + f.rand.Float64(),
		Views:       int64(f.rand.Intn(50000)),
		IsPublished: f.rand.Float32() < 0.9,
		OwnerID:     owner.ID,
		CreatedAt:   f.pastTime(),
	}

	for _, override := range overrides {
		override(video)
	}

	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateComment persists a comment on the given video authored by the given user.
func (f *Factory) CreateComment(author *models.User, video *models.Video, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		VideoID: video.ID,
		OwnerID: author.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateTweet persists a short community post for the given user.
func (f *Factory) CreateTweet(owner *models.User, overrides ...func(*models.Tweet)) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content: gofakeit.Sentence(8),
		OwnerID: owner.ID,
	}

	for _, override := range overrides {
		override(tweet)
	}

	if err := f.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// CreateLike persists a like from user on the given target. Duplicate
// (user, target) pairs are ignored so reruns stay safe.
func (f *Factory) CreateLike(user *models.User, target models.LikeTarget, targetID uint) error {
	like := models.Like{LikedByID: user.ID, TargetType: target, TargetID: targetID}
	return f.db.Where(like).FirstOrCreate(&like).Error
}

// CreateSubscription persists a subscription from subscriber to channel.
func (f *Factory) CreateSubscription(subscriber, channel *models.User) error {
	sub := models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	return f.db.Where(sub).FirstOrCreate(&sub).Error
}

// CreatePlaylist persists a playlist for the given user containing the
// provided videos in order.
func (f *Factory) CreatePlaylist(owner *models.User, videos []*models.Video, overrides ...func(*models.Playlist)) (*models.Playlist, error) {
	playlist := &models.Playlist{
		Name:        fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.HackerNoun()),
		Description: gofakeit.Sentence(12),
		OwnerID:     owner.ID,
	}

	for _, override := range overrides {
		override(playlist)
	}

	if err := f.db.Create(playlist).Error; err != nil {
		return nil, err
	}

	for i, video := range videos {
		entry := models.PlaylistVideo{
			PlaylistID: playlist.ID,
			VideoID:    video.ID,
			Position:   i + 1,
		}
		if err := f.db.Create(&entry).Error; err != nil {
			return nil, err
		}
	}
	return playlist, nil
}

// CreateWatchHistoryEntry records that user watched video at a past time.
func (f *Factory) CreateWatchHistoryEntry(user *models.User, video *models.Video) error {
	entry := models.WatchHistoryEntry{UserID: user.ID, VideoID: video.ID}
	return f.db.Where(entry).Attrs(models.WatchHistoryEntry{WatchedAt: f.pastTime()}).
		FirstOrCreate(&entry).Error
}
