package responder

import (
	"fmt"
	"strings"

	"wallpapermod/internal/domain"
)

const header = "Hello /u/%s, thanks for [your submission](%s) on /r/%s."

const footer = `Please check out our [FAQ](/r/%s/wiki/faq).

-------------------------------------------------

^^BOOP! ^^BLEEP! ^^I ^^am ^^a ^^bot. ^^Concerns? ^^Message ^^[/r/%s](/message/compose?to=%%2Fr%%2F%s&subject=Problem%%20with%%20wallpapermod%%20bot).`

const noResolutionBody = `**Your submission has been removed** - Posts titles must contain the proper resolution (formatted like "[XXXXxYYYY]") and a description of the image (e.g. "[1920×1080] Red Rose").

Reminder: your image(s) must be one of the accepted resolutions [available on the wiki](/r/%s/wiki/resolutions).
For mobile wallpapers, please visit /r/MobileWallpaper, /r/mobilewallpapers, /r/Verticalwallpapers, /r/WallpapersiPhone, or /r/iWallpaper instead.

Please adjust your submission title and resubmit.`

const unsupportedResBody = `**Your submission has been removed** - The resolution of your image(s) doesn't fall under a desktop monitor resolution.
A list of these is [available on the wiki](/r/%s/wiki/resolutions).
/r/%s requires an *exact* horizontal desktop resolution - simply having an appropriate aspect ratio (like 16:9 or 16:10) is not good enough!

For mobile wallpapers, please visit /r/MobileWallpaper, /r/mobilewallpapers, /r/Verticalwallpapers, /r/WallpapersiPhone, or /r/iWallpaper instead.

If you believe this resolution should be accepted, please [message the mods](/message/compose?to=%%2Fr%%2F%s&subject=New%%20resolution%%20request).`

const largerBody = `The resolution of your image(s) doesn't match the resolution you put in the title of your post.
This makes it harder for folks searching for their preferred resolution.
In the future, please inspect your image so the correct resolution is in your post, or crop/resize your image before posting it.

A list of acceptable resolutions is [available on the wiki](/r/%s/wiki/resolutions).`

const smallerBody = `**Your post has been removed** - The resolution of your image(s) doesn't match the resolution you put in the title of your post.
This makes it harder for folks searching for their preferred resolution.
In the future, please inspect your image so the correct resolution is in your post, or crop/resize your image before posting it.

A list of acceptable resolutions is [available on the wiki](/r/%s/wiki/resolutions).`

const smallerExplicitBody = `**Your post has been removed** - The resolution of your image (%d x %d) doesn't match the resolution you put in the title of your post (%d x %d).
This makes it harder for folks searching for their preferred resolution.
In the future, please inspect your image so the correct resolution is in your post, or crop/resize your image before posting it.

A list of acceptable resolutions is [available on the wiki](/r/%s/wiki/resolutions).`

// Responder generates moderation response text for outcomes that warrant
// one. Results without a message (VALID, MODPOST, unsupported media or
// link) yield "".
type Responder struct {
	subreddit string
}

func New(subreddit string) *Responder {
	return &Responder{subreddit: subreddit}
}

func (r *Responder) MakeResponse(sub *domain.Submission) string {
	var body string
	switch sub.Result {
	case domain.PostNoResolution:
		body = fmt.Sprintf(noResolutionBody, r.subreddit)
	case domain.PostUnsupportedRes:
		body = fmt.Sprintf(unsupportedResBody, r.subreddit, r.subreddit, r.subreddit)
	case domain.PostLarger:
		body = fmt.Sprintf(largerBody, r.subreddit)
	case domain.PostSmaller:
		if len(sub.Res) == 1 && len(sub.Images) == 1 {
			body = fmt.Sprintf(smallerExplicitBody,
				sub.Images[0].X, sub.Images[0].Y,
				sub.Res[0].Width, sub.Res[0].Height,
				r.subreddit)
		} else {
			body = fmt.Sprintf(smallerBody, r.subreddit)
		}
	default:
		return ""
	}

	return r.wrap(sub, body)
}

func (r *Responder) wrap(sub *domain.Submission, body string) string {
	head := fmt.Sprintf(header, sub.Author, sub.Permalink, r.subreddit)
	foot := fmt.Sprintf(footer, r.subreddit, r.subreddit, r.subreddit)
	return strings.Join([]string{head, body, foot}, "\n\n")
}
