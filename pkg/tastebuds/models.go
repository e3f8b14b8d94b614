package tastebuds

import (
	"encoding/json"
)

// All entities are backend-owned records; the client only transports them.
// Decoding is permissive: absent fields stay at their zero values and extra
// fields are ignored.

// ==========================
// Auth
// ==========================

type User struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	QuizCompleted bool    `json:"quiz_completed"`
	AvatarURL     *string `json:"avatar_url"`
	CreatedAt     string  `json:"created_at"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// ==========================
// Taste DNA
// ==========================

// QuestionType discriminates the polymorphic quiz question shapes.
type QuestionType string

const (
	QuestionSlider         QuestionType = "slider"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionSwipe          QuestionType = "swipe"
	QuestionChoice         QuestionType = "choice"
	QuestionMultiSelect    QuestionType = "multiselect"
)

// QuizOption is one selectable answer. The backend serves options either as
// {value, label} objects or as bare strings depending on the question type;
// both decode into this one shape.
type QuizOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (o *QuizOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Value = s
		o.Label = s
		return nil
	}

	type alias QuizOption
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = QuizOption(a)
	return nil
}

type QuizQuestion struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`

	// Slider bounds; the backend has used both naming schemes over time.
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	MinValue *float64 `json:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty"`
	MinLabel string   `json:"min_label,omitempty"`
	MaxLabel string   `json:"max_label,omitempty"`

	Labels   []string     `json:"labels,omitempty"`
	Options  []QuizOption `json:"options,omitempty"`
	ImageURL string       `json:"image_url,omitempty"`
}

type QuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizAnswer must be tagged per question type before submission: Value for
// sliders, Choice for discrete types.
type QuizAnswer struct {
	QuestionID string   `json:"question_id"`
	AnswerType string   `json:"answer_type,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	Choice     string   `json:"choice,omitempty"`
}

type TasteDNA struct {
	UserID              string   `json:"user_id,omitempty"`
	AdventureScore      float64  `json:"adventure_score"`
	SpiceTolerance      float64  `json:"spice_tolerance"`
	AmbiancePreference  string   `json:"ambiance_preference,omitempty"`
	PriceSensitivity    float64  `json:"price_sensitivity"`
	CuisineDiversity    float64  `json:"cuisine_diversity,omitempty"`
	PreferredCuisines   []string `json:"preferred_cuisines"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
}

type QuizSubmitResponse struct {
	Message  string   `json:"message"`
	TasteDNA TasteDNA `json:"taste_dna"`
}

type TasteDNACard struct {
	UserName       string   `json:"user_name"`
	AdventureScore float64  `json:"adventure_score"`
	SpiceTolerance float64  `json:"spice_tolerance"`
	TopCuisines    []string `json:"top_cuisines"`
	CardImageURL   string   `json:"card_image_url"`
	ShareText      string   `json:"share_text"`
}

// ==========================
// Twins
// ==========================

type TasteTwin struct {
	TwinID          string   `json:"twin_id"`
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	SimilarityScore float64  `json:"similarity_score"`
	SharedCuisines  []string `json:"shared_cuisines"`
	AdventureScore  float64  `json:"adventure_score"`
	SpiceTolerance  float64  `json:"spice_tolerance"`
}

type TwinsResponse struct {
	Twins      []TasteTwin `json:"twins"`
	TotalCount int         `json:"total_count"`
}

type TwinCountResponse struct {
	Count int `json:"count"`
}

// ==========================
// Restaurants
// ==========================

type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type Location struct {
	Address        string   `json:"address,omitempty"`
	Address1       string   `json:"address1,omitempty"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zip_code"`
	DisplayAddress []string `json:"display_address,omitempty"`
}

// Restaurant is the canonical business record from the Yelp-sourced backend.
type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ImageURL    string     `json:"image_url"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count,omitempty"`
	Price       string     `json:"price"`
	Category    string     `json:"category,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Location    Location   `json:"location"`
	Distance    float64    `json:"distance"` // meters
	MatchScore  float64    `json:"match_score"`
	WhyMatch    string     `json:"why_match,omitempty"`
	URL         string     `json:"url,omitempty"`
}

type OpeningHours struct {
	Day         int    `json:"day"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsOvernight bool   `json:"is_overnight"`
}

type RestaurantDetail struct {
	Restaurant
	Photos   []string       `json:"photos"`
	Phone    string         `json:"phone"`
	Hours    []OpeningHours `json:"hours"`
	IsClosed bool           `json:"is_closed"`
}

type Review struct {
	ID          string `json:"id"`
	Rating      float64 `json:"rating"`
	Text        string `json:"text"`
	TimeCreated string `json:"time_created"`
	User        struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	} `json:"user"`
}

type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

type SearchResponse struct {
	Businesses []Restaurant `json:"businesses"`
	Total      int          `json:"total"`
}

type SavedRestaurant struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	YelpID         string `json:"yelp_id,omitempty"`
	Notes          string `json:"notes"`
	SavedAt        string `json:"saved_at"`
	RestaurantData struct {
		Name     string  `json:"name"`
		ImageURL string  `json:"image_url"`
		Rating   float64 `json:"rating"`
		Price    string  `json:"price"`
	} `json:"restaurant_data"`
}

type SaveResponse struct {
	Message string `json:"message"`
	SavedAt string `json:"saved_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ==========================
// Discovery
// ==========================

type TwinRecommendation struct {
	TwinName   string  `json:"twin_name"`
	Similarity float64 `json:"similarity"`
	Comment    string  `json:"comment"`
}

type FeelingLuckyResponse struct {
	Restaurant
	Explanation         string               `json:"explanation"`
	TwinRecommendations []TwinRecommendation `json:"twin_recommendations"`
}

type CompareResponse struct {
	Restaurants []Restaurant `json:"restaurants"`
}

type TrendingRestaurant struct {
	Restaurant
	TwinVisits    int     `json:"twin_visits"`
	TrendingScore float64 `json:"trending_score"`
}

type TrendingResponse struct {
	Trending []TrendingRestaurant `json:"trending"`
}

// ==========================
// Date Night
// ==========================

type CompatibilityResponse struct {
	CompatibilityScore float64  `json:"compatibility_score"`
	SharedCuisines     []string `json:"shared_cuisines"`
	CompromiseCuisines []string `json:"compromise_cuisines"`
	YouPrefer          []string `json:"you_prefer"`
	TheyPrefer         []string `json:"they_prefer"`
	Analysis           string   `json:"analysis"`
}

type DateNightSuggestions struct {
	PerfectMatches []Restaurant `json:"perfect_matches"`
	YouWillLove    []Restaurant `json:"you_will_love"`
	TheyWillLove   []Restaurant `json:"they_will_love"`
}

// ==========================
// Gamification
// ==========================

// Challenge normalizes the reward field: the backend serves points_reward,
// older payloads used reward_xp. PointsReward is canonical after decode.
type Challenge struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ChallengeType string `json:"challenge_type,omitempty"`
	TargetCount   int    `json:"target_count"`
	PointsReward  int    `json:"points_reward"`
	Active        bool   `json:"active"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
}

func (c *Challenge) UnmarshalJSON(data []byte) error {
	type alias Challenge
	aux := struct {
		*alias
		RewardXP int `json:"reward_xp"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.PointsReward == 0 && aux.RewardXP != 0 {
		c.PointsReward = aux.RewardXP
	}
	return nil
}

type ChallengeProgress struct {
	Challenge   Challenge `json:"challenge"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	CompletedAt string    `json:"completed_at,omitempty"`
	Percentage  float64   `json:"percentage"`
}

type ChallengeListResponse struct {
	ActiveChallenges    []ChallengeProgress `json:"active_challenges"`
	CompletedChallenges []ChallengeProgress `json:"completed_challenges"`
}

type JoinChallengeResponse struct {
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

type ChallengeProgressResponse struct {
	Message   string `json:"message,omitempty"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
	Target    int    `json:"target"`
}

// BoardType selects a leaderboard.
type BoardType string

const (
	BoardAdventure BoardType = "adventure"
	BoardDiscovery BoardType = "discovery"
	BoardSocial    BoardType = "social"
)

// LeaderboardEntry normalizes user_name vs name at the decode boundary.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	type alias LeaderboardEntry
	aux := struct {
		*alias
		UserName string `json:"user_name"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Name == "" && aux.UserName != "" {
		e.Name = aux.UserName
	}
	return nil
}

// LeaderboardResponse normalizes the entries vs leaderboard and
// user_rank vs your_rank naming variants into one canonical shape.
type LeaderboardResponse struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UserRank  int                `json:"user_rank"`
	UserScore float64            `json:"user_score"`
}

func (r *LeaderboardResponse) UnmarshalJSON(data []byte) error {
	type alias LeaderboardResponse
	aux := struct {
		*alias
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
		YourRank    int                `json:"your_rank"`
		YourScore   float64            `json:"your_score"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(r.Entries) == 0 && len(aux.Leaderboard) > 0 {
		r.Entries = aux.Leaderboard
	}
	if r.UserRank == 0 && aux.YourRank != 0 {
		r.UserRank = aux.YourRank
	}
	if r.UserScore == 0 && aux.YourScore != 0 {
		r.UserScore = aux.YourScore
	}
	return nil
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	EarnedAt    string `json:"earned_at"`
}

type AchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

// ==========================
// AI Chat
// ==========================

// AIChatResponse is loosely typed on purpose: the backend omits whole fields
// depending on the query, so every field may be absent. Consumers treat nil
// slices as empty.
type AIChatResponse struct {
	ChatID     string                   `json:"chat_id,omitempty"`
	Text       string                   `json:"text,omitempty"`
	Businesses []Restaurant             `json:"businesses,omitempty"`
	Entities   []map[string]interface{} `json:"entities,omitempty"`
	Types      []string                 `json:"types,omitempty"`
	Tags       []string                 `json:"tags,omitempty"`
}

// ==========================
// Image search
// ==========================

type ImageSearchResponse struct {
	DetectedDish    string       `json:"detected_dish"`
	DetectedCuisine string       `json:"detected_cuisine"`
	Confidence      float64      `json:"confidence"`
	Restaurants     []Restaurant `json:"restaurants"`
}
