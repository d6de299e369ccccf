// Package audio decodes the headerless PCM returned by speech synthesis and
// hands it to a playback device.
package audio
