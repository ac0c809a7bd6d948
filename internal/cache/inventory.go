package cache

import (
	"fmt"
	"strings"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	RankingKeyPrefix = "ranking:%s"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	RankingTTL = time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func RankingKey(course string) string {
	return fmt.Sprintf(RankingKeyPrefix, course)
}

// family returns the key prefix used as a metrics label, e.g. "ranking" for "ranking:law".
func family(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

