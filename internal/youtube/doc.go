// Package youtube fetches the inputs an extraction needs from YouTube
// without an API key: video metadata via the public oEmbed endpoint,
// the description from the watch page, and captions from the timedtext
// endpoint. Metadata and transcript are fetched concurrently; a missing
// transcript is not an error, since extraction can proceed on the
// description alone.
package youtube
