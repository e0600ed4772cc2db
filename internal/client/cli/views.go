package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/communityfeed/internal/client/client"
	"github.com/dmitrijs2005/communityfeed/internal/client/router"
	"github.com/dmitrijs2005/communityfeed/internal/client/services"
)

// Screens builds the terminal views served by the router.
func Screens(feed services.FeedService, sess SessionReader) router.Screens {
	return router.Screens{
		Login:    http.HandlerFunc(loginScreen),
		Register: http.HandlerFunc(registerScreen),
		Feed:     feedScreen(feed, client.FeedPersonal, "Your feed", "Failed to load feed"),
		Global:   feedScreen(feed, client.FeedGlobal, "Global", "Failed to load global posts"),
		Trending: feedScreen(feed, client.FeedTrending, "Trending", "Failed to load trending"),
		Post:     postScreen(feed),
		Profile:  profileScreen(feed, sess),
		User:     userScreen(feed),
	}
}

func loginScreen(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintln(w, "== Log in ==")
	fmt.Fprintln(w, "Type 'login' to sign in, or 'register' to create an account.")
}

func registerScreen(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintln(w, "== Create account ==")
	fmt.Fprintln(w, "Type 'register' to sign up, or 'login' if you already have an account.")
}

func feedScreen(feed services.FeedService, mode client.FeedMode, title, failure string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		fmt.Fprintf(w, "== %s ==\n", title)
		posts, p, err := feed.Feed(r.Context(), mode, page)
		if err != nil {
			fmt.Fprintln(w, client.UserMessage(err, failure))
			return
		}
		if len(posts) == 0 {
			fmt.Fprintln(w, "No posts yet.")
			return
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, post := range posts {
			fmt.Fprintf(tw, "#%d\t@%s\t%s\t%d likes\t%d comments\n",
				post.ID, post.Username, post.ContentPreview, post.LikeCount, post.CommentCount)
		}
		_ = tw.Flush()

		if p.TotalPages > 1 {
			fmt.Fprintf(w, "page %d of %d (open %s?page=N)\n", p.Number+1, p.TotalPages, r.URL.Path)
		}
	}
}

func postScreen(feed services.FeedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			fmt.Fprintln(w, "Post not found")
			return
		}

		post, err := feed.Post(r.Context(), id)
		if err != nil {
			fmt.Fprintln(w, notFoundOr(err, "Post not found", "Failed to load post"))
			return
		}

		author := "@" + post.Username
		if post.AuthorFullName != "" {
			author = post.AuthorFullName + " " + author
		}
		fmt.Fprintf(w, "== Post #%d by %s ==\n", post.ID, author)
		fmt.Fprintln(w, post.Content)
		fmt.Fprintf(w, "%d likes, %d comments, posted %s\n", post.LikeCount, post.CommentCount, post.CreatedAt)
	}
}

func userScreen(feed services.FeedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			fmt.Fprintln(w, "User not found")
			return
		}

		u, err := feed.User(r.Context(), id)
		if err != nil {
			fmt.Fprintln(w, notFoundOr(err, "User not found", "Failed to load user"))
			return
		}
		writeUser(w, u)
	}
}

func profileScreen(feed services.FeedService, sess SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := feed.Profile(r.Context())
		if err != nil {
			fmt.Fprintln(w, client.UserMessage(err, "Failed to load profile"))
			if cur := sess.Current(); cur != nil {
				writeUser(w, &client.User{ID: cur.UserID, Username: cur.Username, Email: cur.Email})
			}
			return
		}
		writeUser(w, u)
	}
}

func writeUser(w io.Writer, u *client.User) {
	fmt.Fprintf(w, "== @%s ==\n", u.Username)
	if name := fullName(u); name != "" {
		fmt.Fprintln(w, name)
	}
	if u.Email != "" {
		fmt.Fprintln(w, u.Email)
	}
	if u.Bio != "" {
		fmt.Fprintln(w, u.Bio)
	}
}

func fullName(u *client.User) string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

func notFoundOr(err error, notFound, failure string) string {
	if errors.Is(err, client.ErrNotFound) || errors.Is(err, services.ErrInvalidID) {
		return notFound
	}
	return client.UserMessage(err, failure)
}
