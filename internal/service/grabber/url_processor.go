package grabber

//go:generate $MOCKGEN -source=url_processor.go -destination=mocks/url_processor_mock.go

import (
	"regexp"
	"strings"

	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// URLProcessor validates service links and expands URL inputs.
type URLProcessor interface {
	// Validate recognizes a web link or URI and normalizes it to the web form.
	Validate(rawURL string) *ValidationResult
	// ExpandURLs flattens inputs, reading one URL per line from .txt files, and drops duplicates.
	ExpandURLs(inputs []string) ([]string, error)
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct{}

const (
	// serviceWebBaseURL is the origin of normalized links.
	serviceWebBaseURL = "https://open.spotify.com"
	// invalidURLMessage is reported for unrecognized links.
	invalidURLMessage = "Invalid Spotify URL"
)

// linkPatterns recognize the web link and URI forms. Both expose the "type" and "id" groups.
//
//nolint:gochecknoglobals,lll // Immutable, pre-compiled patterns used as constants.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://open\.spotify\.com/(?:intl-[a-zA-Z]{2}(?:-[a-zA-Z]{2})?/)?(?P<type>track|playlist|album)/(?P<id>[a-zA-Z0-9]+)/?(?:[?#].*)?$`),
	regexp.MustCompile(`^spotify:(?P<type>track|playlist|album):(?P<id>[a-zA-Z0-9]+)$`),
}

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	return &URLProcessorImpl{}
}

// Validate recognizes a web link or URI and normalizes it to the web form.
// It performs no I/O.
func (up *URLProcessorImpl) Validate(rawURL string) *ValidationResult {
	trimmed := strings.TrimSpace(rawURL)

	for _, pattern := range linkPatterns {
		var (
			contentType = utils.ExtractNamedGroup(pattern, "type", trimmed)
			contentID   = utils.ExtractNamedGroup(pattern, "id", trimmed)
		)

		if contentType == "" || contentID == "" {
			continue
		}

		return &ValidationResult{
			Valid: true,
			Type:  ContentType(contentType),
			ID:    contentID,
			URL:   serviceWebBaseURL + "/" + contentType + "/" + contentID,
		}
	}

	return &ValidationResult{
		Valid:   false,
		Type:    ContentTypeNone,
		URL:     rawURL,
		Message: invalidURLMessage,
	}
}

// ExpandURLs flattens inputs, reading one URL per line from .txt files, and drops duplicates.
func (up *URLProcessorImpl) ExpandURLs(inputs []string) ([]string, error) {
	var (
		// Track processed URLs.
		processedSet = make(map[string]struct{}, len(inputs))
		// Track processed text files.
		processedTextFiles = make(map[string]struct{})
		// Store the final list of URLs.
		processedURLs []string
	)

	addURL := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}

		if _, ok := processedSet[url]; ok {
			return
		}

		processedSet[url] = struct{}{}

		processedURLs = append(processedURLs, url)
	}

	for _, input := range inputs {
		// If the input is not a text file, add it directly to the processed list.
		if !strings.HasSuffix(strings.ToLower(input), constants.ExtensionText) {
			addURL(input)

			continue
		}

		// Skip already processed text files.
		if _, exists := processedTextFiles[input]; exists {
			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(input)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			// Lines starting with # are comments.
			if strings.HasPrefix(line, "#") {
				continue
			}

			addURL(line)
		}

		processedTextFiles[input] = struct{}{}
	}

	return processedURLs, nil
}
