package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const guideDocType = "question_guide"

// QuestionGuideStore holds embedded chunks of interview guides used to steer
// question generation.
type QuestionGuideStore interface {
	InitCollection(ctx context.Context) error
	UpsertChunk(ctx context.Context, docID string, text string, embedding []float32) error
	SearchGuides(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type SearchResult struct {
	ID    string
	Score float32
	Text  string
}

const (
	// text-embedding-004 output size
	guideVectorSize   = 768
	defaultQdrantPort = 6334
)

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
}

// qdrantEndpoint turns QDRANT_URL into gRPC dial settings. Without an explicit
// port the default gRPC port is used, not the REST one.
func qdrantEndpoint(rawURL string) (host string, port int, useTLS bool, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host = parsed.Hostname()
	if host == "" {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL %q: missing host", rawURL)
	}

	port = defaultQdrantPort
	if p := parsed.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return "", 0, false, fmt.Errorf("invalid Qdrant port %q: %w", p, err)
		}
	}

	return host, port, parsed.Scheme == "https", nil
}

func NewQdrantService(rawURL, apiKey, collectionName string) (QuestionGuideStore, error) {
	host, port, useTLS, err := qdrantEndpoint(rawURL)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
	}, nil
}

// InitCollection implements QuestionGuideStore. It creates the guide
// collection together with a keyword index on doc_id, which re-ingestion
// deletes by.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Printf("✅ Guide collection '%s' found\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     guideVectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	_, err = q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: q.collectionName,
		FieldName:      "doc_id",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("failed to index doc_id: %w", err)
	}

	log.Printf("✅ Guide collection '%s' created\n", q.collectionName)
	return nil
}

// UpsertChunk implements QuestionGuideStore.
func (q *qdrantService) UpsertChunk(ctx context.Context, docID string, text string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.New().String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   docID,
			"doc_type": guideDocType,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchGuides implements QuestionGuideStore.
func (q *qdrantService) SearchGuides(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", guideDocType),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		result := SearchResult{Score: point.Score}

		if docID, ok := point.Payload["doc_id"]; ok {
			result.ID = docID.GetStringValue()
		}
		if text, ok := point.Payload["text"]; ok {
			result.Text = text.GetStringValue()
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteDocument implements QuestionGuideStore. Re-ingesting a guide calls
// this first so stale chunks do not linger.
func (q *qdrantService) DeleteDocument(ctx context.Context, docID string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("doc_id", docID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
