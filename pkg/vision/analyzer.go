package vision

import "context"

// Analyzer describes an image in response to a prompt.
type Analyzer interface {
	// AnalyzeImage returns a textual description of the image. It is
	// called at most once per captured frame; implementations must not
	// retry internally.
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
}

// sniffMIMEType guesses the image MIME type from magic bytes. Captures
// are JPEG in practice; PNG shows up from tests and file uploads.
func sniffMIMEType(image []byte) string {
	switch {
	case len(image) >= 2 && image[0] == 0xff && image[1] == 0xd8:
		return "image/jpeg"
	case len(image) >= 4 && image[0] == 0x89 && image[1] == 'P' && image[2] == 'N' && image[3] == 'G':
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
