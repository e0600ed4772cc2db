package client

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	UserID       int64    `json:"userId"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles,omitempty"`
}

// FeedMode selects which post listing to fetch.
type FeedMode string

const (
	FeedPersonal FeedMode = "feed"
	FeedGlobal   FeedMode = "global"
	FeedTrending FeedMode = "trending"
)

// Page mirrors the paged listing envelope returned by the API.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type PostSummary struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	Username       string `json:"username,omitempty"`
	ContentPreview string `json:"contentPreview"`
	LikeCount      int    `json:"likeCount"`
	CommentCount   int    `json:"commentCount"`
	CreatedAt      string `json:"createdAt"`
}

type Post struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"userId"`
	Username           string `json:"username,omitempty"`
	AuthorFullName     string `json:"authorFullName,omitempty"`
	Content            string `json:"content"`
	MediaURLs          string `json:"mediaUrls,omitempty"`
	LikeCount          int    `json:"likeCount"`
	CommentCount       int    `json:"commentCount"`
	LikedByCurrentUser bool   `json:"likedByCurrentUser,omitempty"`
	CreatedAt          string `json:"createdAt"`
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Problem is an RFC 7807 problem detail as produced by the API.
type Problem struct {
	Type     string            `json:"type,omitempty"`
	Title    string            `json:"title,omitempty"`
	Status   int               `json:"status,omitempty"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Path     string            `json:"path,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}
