// Package audio plays the optional sound that accompanies an overlay.
// It uses the beep library to decode WAV, OGG and MP3 files.
package audio
