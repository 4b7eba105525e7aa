package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	VideoKeyPrefix    = "video:%d"
	ChannelKeyPrefix  = "channel:%s"
	PlaylistKeyPrefix = "playlist:%d"
)

const (
	VideoTTL    = 5 * time.Minute
	ChannelTTL  = 5 * time.Minute
	PlaylistTTL = 10 * time.Minute
)

func VideoKey(videoID uint) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

func ChannelKey(username string) string {
	return fmt.Sprintf(ChannelKeyPrefix, username)
}

func PlaylistKey(playlistID uint) string {
	return fmt.Sprintf(PlaylistKeyPrefix, playlistID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
}

func InvalidateChannel(ctx context.Context, username string) {
	Invalidate(ctx, ChannelKey(username))
}

func InvalidatePlaylist(ctx context.Context, playlistID uint) {
	Invalidate(ctx, PlaylistKey(playlistID))
}
