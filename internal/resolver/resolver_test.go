package resolver

import (
	"context"
	"errors"
	"testing"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

type fakePosts map[string]domain.Post

func (f fakePosts) GetPost(ctx context.Context, id string) (domain.Post, error) {
	post, ok := f[id]
	if !ok {
		return domain.Post{}, errors.New("no such post")
	}
	return post, nil
}

type fakeImgur []string

func (f fakeImgur) ImageURLs(ctx context.Context, link string) ([]string, error) {
	return f, nil
}

type fakeFlickr string

func (f fakeFlickr) ImageURL(ctx context.Context, link string) (string, error) {
	return string(f), nil
}

func newResolver(posts fakePosts, img fakeImgur, fl fakeFlickr) *Resolver {
	zlog.Init()
	return New(posts, img, fl, &zlog.Logger)
}

func TestResolveDirectImage(t *testing.T) {
	r := newResolver(nil, nil, "")

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://i.redd.it/pic.png", Domain: "i.redd.it",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceSingle || len(src.URLs) != 1 || src.URLs[0] != "https://i.redd.it/pic.png" {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveImageHint(t *testing.T) {
	r := newResolver(nil, nil, "")

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://example.com/x.jpg", Domain: "example.com", PostHint: "image",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceSingle {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveGallery(t *testing.T) {
	r := newResolver(nil, nil, "")

	urls := []string{"https://i.redd.it/a.png", "https://i.redd.it/b.png"}
	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", IsGallery: true, GalleryURLs: urls,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceGallery || len(src.URLs) != 2 {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveEmptyGalleryUnsupported(t *testing.T) {
	r := newResolver(nil, nil, "")

	_, err := r.Resolve(context.Background(), domain.Post{ID: "p1", IsGallery: true})
	if !errors.Is(err, domain.ErrUnsupportedLink) {
		t.Fatalf("err = %v, want ErrUnsupportedLink", err)
	}
}

func TestResolveCrosspost(t *testing.T) {
	posts := fakePosts{
		"parent1": {ID: "parent1", URL: "https://i.redd.it/orig.png", Domain: "i.redd.it"},
	}
	r := newResolver(posts, nil, "")

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", CrosspostParentID: "parent1", Domain: "reddit.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceSingle || src.URLs[0] != "https://i.redd.it/orig.png" {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveCrosspostLoopBounded(t *testing.T) {
	posts := fakePosts{
		"a": {ID: "a", CrosspostParentID: "b"},
		"b": {ID: "b", CrosspostParentID: "a"},
	}
	r := newResolver(posts, nil, "")

	_, err := r.Resolve(context.Background(), domain.Post{ID: "start", CrosspostParentID: "a"})
	if !errors.Is(err, domain.ErrUnsupportedLink) {
		t.Fatalf("err = %v, want ErrUnsupportedLink after depth limit", err)
	}
}

func TestResolveImgurAlbum(t *testing.T) {
	r := newResolver(nil, fakeImgur{"https://i.imgur.com/1.png", "https://i.imgur.com/2.png"}, "")

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://imgur.com/a/abc12", Domain: "imgur.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceGallery || src.Provider != "Imgur" || len(src.URLs) != 2 {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveImgurSingle(t *testing.T) {
	r := newResolver(nil, fakeImgur{"https://i.imgur.com/1.png"}, "")

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://imgur.com/1abcd", Domain: "imgur.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceSingle || src.Provider != "Imgur" {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveFlickr(t *testing.T) {
	r := newResolver(nil, nil, fakeFlickr("https://live.staticflickr.com/orig.jpg"))

	src, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://flickr.com/photos/someone/12345", Domain: "flickr.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != domain.SourceSingle || src.Provider != "Flickr" {
		t.Errorf("src = %+v", src)
	}
}

func TestResolveUnknownDomain(t *testing.T) {
	r := newResolver(nil, nil, "")

	_, err := r.Resolve(context.Background(), domain.Post{
		ID: "p1", URL: "https://example.com/page", Domain: "example.com",
	})
	if !errors.Is(err, domain.ErrUnsupportedLink) {
		t.Fatalf("err = %v, want ErrUnsupportedLink", err)
	}
}
