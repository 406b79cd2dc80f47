package reddit

import (
	"html"
	"time"

	"wallpapermod/internal/domain"
)

// Wire shapes mimic reddit.com JSON responses.

type listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Kind string   `json:"kind"`
	Data postData `json:"data"`
}

type postData struct {
	ID              string  `json:"id"`
	Subreddit       string  `json:"subreddit"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Permalink       string  `json:"permalink"`
	URL             string  `json:"url"`
	Domain          string  `json:"domain"`
	PostHint        string  `json:"post_hint"`
	IsGallery       bool    `json:"is_gallery"`
	CreatedUTC      float64 `json:"created_utc"`
	CrosspostParent string  `json:"crosspost_parent"`

	GalleryData struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`

	MediaMetadata map[string]struct {
		Status string `json:"status"`
		Source struct {
			URL string `json:"u"`
		} `json:"s"`
	} `json:"media_metadata"`
}

type userList struct {
	Data struct {
		Children []struct {
			Name string `json:"name"`
		} `json:"children"`
	} `json:"data"`
}

type wikiPage struct {
	Data struct {
		ContentHTML string `json:"content_html"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

func (p postData) toPost() domain.Post {
	post := domain.Post{
		ID:                p.ID,
		Subreddit:         p.Subreddit,
		Title:             p.Title,
		Author:            p.Author,
		Permalink:         p.Permalink,
		URL:               p.URL,
		Domain:            p.Domain,
		PostHint:          p.PostHint,
		IsGallery:         p.IsGallery,
		CrosspostParentID: parentID(p.CrosspostParent),
		CreatedAt:         time.Unix(int64(p.CreatedUTC), 0).UTC(),
	}
	// Gallery items keep their gallery_data order; entries that are not
	// "valid" are dropped.
	for _, item := range p.GalleryData.Items {
		media, ok := p.MediaMetadata[item.MediaID]
		if !ok || media.Status != "valid" || media.Source.URL == "" {
			continue
		}
		post.GalleryURLs = append(post.GalleryURLs, html.UnescapeString(media.Source.URL))
	}
	return post
}

// parentID strips the "t3_" kind prefix from a crosspost fullname.
func parentID(fullname string) string {
	if fullname == "" {
		return ""
	}
	for i := 0; i < len(fullname); i++ {
		if fullname[i] == '_' {
			return fullname[i+1:]
		}
	}
	return fullname
}
