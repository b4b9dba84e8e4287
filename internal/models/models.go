package models

import "time"

// Gender values accepted for users and candidate filters
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// AgeBuckets are the fixed rater-age partitions used in photo statistics,
// in presentation order.
var AgeBuckets = []string{"0-18", "19-30", "31-50", "51+"}

// User represents a registered user
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Points           int        `json:"points"`
	Gender           string     `json:"gender"`
	Age              int        `json:"age"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Photo represents an uploaded photo
type Photo struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Rating represents a single rating of a photo. The rater's gender and age
// are snapshotted at rating time so later profile changes do not rewrite
// historical statistics.
type Rating struct {
	ID          string    `json:"id"`
	PhotoID     string    `json:"photo_id"`
	RaterID     string    `json:"rater_id"`
	Score       int       `json:"score"`
	RaterGender string    `json:"rater_gender"`
	RaterAge    int       `json:"rater_age"`
	CreatedAt   time.Time `json:"created_at"`
}

// CandidateFilter narrows the random-photo selection by owner demographics.
// Nil fields are ignored.
type CandidateFilter struct {
	Gender *string
	MinAge *int
	MaxAge *int
}

// Candidate is a photo served for rating, with the owner demographics the
// filter matched against.
type Candidate struct {
	Photo
	OwnerGender string `json:"owner_gender"`
	OwnerAge    int    `json:"owner_age"`
}

// BucketStats holds count and mean score for one statistics partition
type BucketStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// PhotoStats aggregates a photo's ratings by rater gender and age bucket
type PhotoStats struct {
	TotalRatings int                    `json:"total_ratings"`
	AverageScore float64                `json:"average_score"`
	ByGender     map[string]BucketStats `json:"by_gender"`
	ByAge        map[string]BucketStats `json:"by_age"`
}

// PhotoWithStats pairs a photo with its aggregated statistics
type PhotoWithStats struct {
	Photo
	Stats PhotoStats `json:"stats"`
}

// UserStats is the per-user summary returned by the stats endpoint
type UserStats struct {
	Points         int `json:"points"`
	UploadedPhotos int `json:"uploaded_photos"`
	RatedPhotos    int `json:"rated_photos"`
}
