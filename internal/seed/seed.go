package seed

import (
	"fmt"
	"log"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers      int
	VideosPerUser int
	// MaxDays spreads generated timestamps over the last N days.
	MaxDays int
	// SkipBcrypt stores plaintext passwords for faster local seeding.
	SkipBcrypt bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 15
	}
	if opts.VideosPerUser <= 0 {
		opts.VideosPerUser = 4
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes all seeded rows, resetting identity sequences.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, playlist_videos, playlists, tweets,
		watch_history_entries, subscriptions, videos, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed generates users, videos, comments, likes, subscriptions, playlists,
// tweets and watch history in one pass.
func (s *Seeder) Seed() error {
	log.Printf("Seeding %d users with ~%d videos each...", s.opts.NumUsers, s.opts.VideosPerUser)

	users, err := s.createUsers()
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ Created %d users", len(users))

	videos, err := s.createVideos(users)
	if err != nil {
		return fmt.Errorf("failed to create videos: %w", err)
	}
	log.Printf("✓ Created %d videos", len(videos))

	commentCount, err := s.createComments(users, videos)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ Created %d comments", commentCount)

	tweets, err := s.createTweets(users)
	if err != nil {
		return fmt.Errorf("failed to create tweets: %w", err)
	}
	log.Printf("✓ Created %d tweets", len(tweets))

	likeCount, err := s.createLikes(users, videos, tweets)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ Created %d likes", likeCount)

	subCount, err := s.createSubscriptions(users)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions: %w", err)
	}
	log.Printf("✓ Created %d subscriptions", subCount)

	playlistCount, err := s.createPlaylists(users, videos)
	if err != nil {
		return fmt.Errorf("failed to create playlists: %w", err)
	}
	log.Printf("✓ Created %d playlists", playlistCount)

	historyCount, err := s.createWatchHistory(users, videos)
	if err != nil {
		return fmt.Errorf("failed to create watch history: %w", err)
	}
	log.Printf("✓ Created %d watch history entries", historyCount)

	log.Println("Seeding completed successfully")
	return nil
}

func (s *Seeder) createUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createVideos(users []*models.User) ([]*models.Video, error) {
	videos := make([]*models.Video, 0, len(users)*s.opts.VideosPerUser)
	for _, user := range users {
		// per-user count varies a little so channels look organic
		n := s.opts.VideosPerUser + s.factory.rand.Intn(3) - 1
		for i := 0; i < n; i++ {
			video, err := s.factory.CreateVideo(user)
			if err != nil {
				return nil, err
			}
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (s *Seeder) createComments(users []*models.User, videos []*models.Video) (int, error) {
	count := 0
	for _, video := range videos {
		numComments := s.factory.rand.Intn(6)
		for i := 0; i < numComments; i++ {
			author := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, video); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *Seeder) createTweets(users []*models.User) ([]*models.Tweet, error) {
	tweets := make([]*models.Tweet, 0, len(users)*2)
	for _, user := range users {
		numTweets := s.factory.rand.Intn(4)
		for i := 0; i < numTweets; i++ {
			tweet, err := s.factory.CreateTweet(user)
			if err != nil {
				return nil, err
			}
			tweets = append(tweets, tweet)
		}
	}
	return tweets, nil
}

func (s *Seeder) createLikes(users []*models.User, videos []*models.Video, tweets []*models.Tweet) (int, error) {
	count := 0
	for _, video := range videos {
		numLikes := s.factory.rand.Intn(len(users))
		for i := 0; i < numLikes; i++ {
			user := users[s.factory.rand.Intn(len(users))]
			if user.ID == video.OwnerID {
				continue
			}
			if err := s.factory.CreateLike(user, models.LikeTargetVideo, video.ID); err != nil {
				return count, err
			}
			count++
		}
	}
	half := len(users) / 2
	if half < 1 {
		half = 1
	}
	for _, tweet := range tweets {
		numLikes := s.factory.rand.Intn(half)
		for i := 0; i < numLikes; i++ {
			user := users[s.factory.rand.Intn(len(users))]
			if err := s.factory.CreateLike(user, models.LikeTargetTweet, tweet.ID); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *Seeder) createSubscriptions(users []*models.User) (int, error) {
	count := 0
	half := len(users) / 2
	if half < 1 {
		half = 1
	}
	for _, subscriber := range users {
		numSubs := s.factory.rand.Intn(half)
		for i := 0; i < numSubs; i++ {
			channel := users[s.factory.rand.Intn(len(users))]
			if channel.ID == subscriber.ID {
				continue
			}
			if err := s.factory.CreateSubscription(subscriber, channel); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *Seeder) createPlaylists(users []*models.User, videos []*models.Video) (int, error) {
	count := 0
	if len(videos) == 0 {
		return 0, nil
	}
	for _, user := range users {
		if s.factory.rand.Float32() > 0.6 {
			continue
		}
		numVideos := s.factory.rand.Intn(5) + 1
		picks := make([]*models.Video, 0, numVideos)
		for i := 0; i < numVideos; i++ {
			picks = append(picks, videos[s.factory.rand.Intn(len(videos))])
		}
		if _, err := s.factory.CreatePlaylist(user, dedupeVideos(picks)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *Seeder) createWatchHistory(users []*models.User, videos []*models.Video) (int, error) {
	count := 0
	if len(videos) == 0 {
		return 0, nil
	}
	for _, user := range users {
		numWatched := s.factory.rand.Intn(8)
		for i := 0; i < numWatched; i++ {
			video := videos[s.factory.rand.Intn(len(videos))]
			if err := s.factory.CreateWatchHistoryEntry(user, video); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func dedupeVideos(videos []*models.Video) []*models.Video {
	seen := make(map[uint]bool, len(videos))
	out := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}
