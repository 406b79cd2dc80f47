package reddit

import (
	"encoding/json"
	"testing"
)

const listingJSON = `{
  "kind": "Listing",
  "data": {
    "after": "t3_next",
    "children": [
      {
        "kind": "t3",
        "data": {
          "id": "abc1234",
          "subreddit": "wallpaper",
          "title": "[1920x1080] Cool Rose",
          "author": "someone",
          "permalink": "/r/wallpaper/comments/abc1234/cool_rose/",
          "url": "https://www.reddit.com/gallery/abc1234",
          "domain": "reddit.com",
          "is_gallery": true,
          "created_utc": 1700000000.0,
          "gallery_data": {
            "items": [
              {"media_id": "mm2"},
              {"media_id": "mm1"},
              {"media_id": "mm3"}
            ]
          },
          "media_metadata": {
            "mm1": {"status": "valid", "s": {"u": "https://preview.redd.it/mm1.png?width=1920&amp;s=x"}},
            "mm2": {"status": "valid", "s": {"u": "https://preview.redd.it/mm2.png"}},
            "mm3": {"status": "failed", "s": {"u": "https://preview.redd.it/mm3.png"}}
          }
        }
      }
    ]
  }
}`

func TestListingToPost(t *testing.T) {
	var lst listing
	if err := json.Unmarshal([]byte(listingJSON), &lst); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if lst.Data.After != "t3_next" {
		t.Errorf("after = %q", lst.Data.After)
	}
	if len(lst.Data.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(lst.Data.Children))
	}

	post := lst.Data.Children[0].Data.toPost()
	if post.ID != "abc1234" || post.Author != "someone" {
		t.Errorf("post = %+v", post)
	}
	if !post.IsGallery {
		t.Error("expected a gallery post")
	}
	// gallery_data order is preserved; the failed item is skipped and
	// HTML entities in the source URL are unescaped.
	want := []string{
		"https://preview.redd.it/mm2.png",
		"https://preview.redd.it/mm1.png?width=1920&s=x",
	}
	if len(post.GalleryURLs) != len(want) {
		t.Fatalf("gallery urls = %v, want %v", post.GalleryURLs, want)
	}
	for i := range want {
		if post.GalleryURLs[i] != want[i] {
			t.Errorf("gallery url[%d] = %q, want %q", i, post.GalleryURLs[i], want[i])
		}
	}
	if got := post.CreatedAt.Unix(); got != 1700000000 {
		t.Errorf("created = %d, want 1700000000", got)
	}
}

func TestParentID(t *testing.T) {
	tests := map[string]string{
		"t3_xyz987": "xyz987",
		"":          "",
		"nounders":  "nounders",
	}
	for in, want := range tests {
		if got := parentID(in); got != want {
			t.Errorf("parentID(%q) = %q, want %q", in, got, want)
		}
	}
}
