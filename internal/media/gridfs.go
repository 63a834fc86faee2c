package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const gridFSBucketName = "media"

// GridFSStore keeps blobs in a MongoDB GridFS bucket. References have the
// form <urlPrefix>/<object id hex>.
type GridFSStore struct {
	bucket    *gridfs.Bucket
	urlPrefix string
}

func NewGridFSStore(db *mongo.Database, urlPrefix string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(gridFSBucketName))
	if err != nil {
		return nil, fmt.Errorf("opening gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (g *GridFSStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	id, err := g.bucket.UploadFromStream(name, bytes.NewReader(data), opts)
	if err != nil {
		return "", fmt.Errorf("uploading to gridfs: %w", err)
	}
	return g.urlPrefix + "/" + id.Hex(), nil
}

func (g *GridFSStore) Delete(_ context.Context, ref string) error {
	id, err := g.objectID(ref)
	if err != nil {
		// not one of ours
		return nil
	}
	if err := g.bucket.Delete(id); err != nil && err != gridfs.ErrFileNotFound {
		return fmt.Errorf("deleting from gridfs: %w", err)
	}
	return nil
}

// Open streams the blob with the given id and reports its content type
func (g *GridFSStore) Open(_ context.Context, id string) (io.ReadCloser, string, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", fmt.Errorf("media %q: %w", id, apperrors.ErrNotFound)
	}
	stream, err := g.bucket.OpenDownloadStream(objID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, "", fmt.Errorf("media %q: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("opening gridfs stream: %w", err)
	}
	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok {
			contentType = ct
		}
	}
	return stream, contentType, nil
}

func (g *GridFSStore) objectID(ref string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimPrefix(ref, g.urlPrefix+"/"))
}
