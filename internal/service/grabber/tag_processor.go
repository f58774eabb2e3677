package grabber

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	// IsTaggable reports whether the container of path can carry tags.
	IsTaggable(path string) bool
	// WriteTags writes metadata and the optional cover into req.TrackPath.
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// CoverPath is the file path of the cover art image. Empty disables embedding.
	CoverPath string
	// Title is the track title.
	Title string
	// Artist is the performing artist.
	Artist string
	// Album is the album name.
	Album string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// imageMetadata contains image data and its MIME type.
type imageMetadata struct {
	// data contains the raw image bytes.
	data []byte
	// mimeType specifies the image format (e.g., "image/jpeg").
	mimeType string
}

// extractFLACCommentResult contains the result of extracting FLAC comment metadata.
type extractFLACCommentResult struct {
	// Comment is the FLAC Vorbis comment metadata block.
	Comment *flacvorbis.MetaDataBlockVorbisComment
	// Index is the index of the comment block in the FLAC file metadata (-1 if not found).
	Index int
}

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// IsTaggable reports whether the container of path can carry tags.
func (tp *TagProcessorImpl) IsTaggable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtensionMP3, constants.ExtensionFLAC:
		return true
	default:
		return false
	}
}

// WriteTags writes metadata to audio files based on the provided request.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	if !tp.IsTaggable(req.TrackPath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedContainer, filepath.Ext(req.TrackPath))
	}

	var image *imageMetadata

	// If a cover path is provided, read the cover art.
	if req.CoverPath != "" {
		imageData, err := os.ReadFile(filepath.Clean(req.CoverPath))
		if err != nil {
			return err
		}

		// Determine the MIME type of the cover art based on its file extension.
		imageMIMEType := mime.TypeByExtension(filepath.Ext(req.CoverPath))
		if imageMIMEType == "" {
			imageMIMEType = "image/jpeg"
		}

		image = &imageMetadata{
			data:     imageData,
			mimeType: imageMIMEType,
		}
	}

	if strings.EqualFold(filepath.Ext(req.TrackPath), constants.ExtensionFLAC) {
		return tp.writeFLACTags(ctx, req, image)
	}

	return tp.writeMP3Tags(req, image)
}

func (tp *TagProcessorImpl) writeFLACTags(ctx context.Context, req *WriteTagsRequest, image *imageMetadata) error {
	// Parse the FLAC file.
	f, err := flac.ParseFile(filepath.Clean(req.TrackPath))
	if err != nil {
		return err
	}

	commentResult := tp.extractFLACComment(f)

	tag := commentResult.Comment

	// If no existing comments are found, create a new metadata block.
	if tag == nil {
		tag = flacvorbis.New()
	}

	if err = tp.addFLACTags(tag, req); err != nil {
		return err
	}

	// Marshal the updated metadata and update the FLAC file's metadata blocks.
	tagMeta := tag.Marshal()
	if commentResult.Index >= 0 {
		f.Meta[commentResult.Index] = &tagMeta
	} else {
		f.Meta = append(f.Meta, &tagMeta)
	}

	tp.embedFLACCover(ctx, f, image)

	return f.Save(req.TrackPath)
}

func (tp *TagProcessorImpl) extractFLACComment(f *flac.File) *extractFLACCommentResult {
	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err == nil {
			return &extractFLACCommentResult{
				Comment: comment,
				Index:   idx,
			}
		}
	}

	return &extractFLACCommentResult{
		Comment: nil,
		Index:   -1,
	}
}

func (tp *TagProcessorImpl) addFLACTags(tag *flacvorbis.MetaDataBlockVorbisComment, req *WriteTagsRequest) error {
	// Fixed order keeps the written block deterministic.
	flacTags := []struct {
		key   string
		value string
	}{
		{"TITLE", req.Title},
		{"ARTIST", req.Artist},
		{"ALBUM", req.Album},
	}

	for _, t := range flacTags {
		if t.value == "" {
			continue
		}

		if err := tag.Add(t.key, t.value); err != nil {
			return err
		}
	}

	return nil
}

func (tp *TagProcessorImpl) embedFLACCover(ctx context.Context, f *flac.File, image *imageMetadata) {
	if image == nil {
		return
	}

	picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", image.data, image.mimeType)
	if err != nil {
		logger.Errorf(ctx, "Failed to embed image to FLAC: %v", err)

		return
	}

	pictureMeta := picture.Marshal()
	f.Meta = append(f.Meta, &pictureMeta)
}

func (tp *TagProcessorImpl) writeMP3Tags(req *WriteTagsRequest, image *imageMetadata) error {
	// Parse existing frames so an encoder-written tag is updated, not replaced.
	//nolint:exhaustruct // ParseFrames left empty to parse every frame.
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}

	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if req.Title != "" {
		tag.SetTitle(req.Title)
	}

	if req.Artist != "" {
		tag.SetArtist(req.Artist)
	}

	if req.Album != "" {
		tag.SetAlbum(req.Album)
	}

	if image != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    image.mimeType,
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     image.data,
		})
	}

	return tag.Save()
}
