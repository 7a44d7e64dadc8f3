package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/sirupsen/logrus"
)

const (
	milvusIDField      = "id"
	milvusPayloadField = "payload"
	milvusVectorField  = "embedding"

	// nprobe for IVF_FLAT searches
	milvusSearchProbes = 10
)

// MilvusStore implements Store on a Milvus deployment. Payloads are stored
// as JSON in a VarChar field next to the vector, so they round-trip exactly
// as written.
type MilvusStore struct {
	c   client.Client
	log *logrus.Entry
}

// NewMilvusStore connects to Milvus at the given address
func NewMilvusStore(ctx context.Context, address string) (*MilvusStore, error) {
	c, err := client.NewClient(ctx, client.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("connect to milvus at %s: %w", address, err)
	}
	return &MilvusStore{
		c:   c,
		log: logrus.WithField("component", "vectorstore"),
	}, nil
}

// EnsureCollection creates the collection, index and load state if missing
func (s *MilvusStore) EnsureCollection(ctx context.Context, collection string, dim int) error {
	exists, err := s.c.HasCollection(ctx, collection)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", collection, err)
	}

	if !exists {
		schema := entity.NewSchema().
			WithName(collection).
			WithField(entity.NewField().
				WithName(milvusIDField).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(64).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(milvusPayloadField).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(8192)).
			WithField(entity.NewField().
				WithName(milvusVectorField).
				WithDataType(entity.FieldTypeFloatVector).
				WithDim(int64(dim)))

		if err := s.c.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
			return fmt.Errorf("create collection %q: %w", collection, err)
		}

		idx, err := entity.NewIndexIvfFlat(entity.COSINE, 128)
		if err != nil {
			return fmt.Errorf("build index definition: %w", err)
		}
		if err := s.c.CreateIndex(ctx, collection, milvusVectorField, idx, false); err != nil {
			return fmt.Errorf("create index on %q: %w", collection, err)
		}
		s.log.WithFields(logrus.Fields{"collection": collection, "dim": dim}).Info("created collection")
	}

	if err := s.c.LoadCollection(ctx, collection, false); err != nil {
		return fmt.Errorf("load collection %q: %w", collection, err)
	}
	return nil
}

// Upsert writes one point; the payload is serialized to JSON
func (s *MilvusStore) Upsert(ctx context.Context, collection string, p Point) error {
	payload, err := json.Marshal(p.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	idCol := entity.NewColumnVarChar(milvusIDField, []string{p.ID})
	payloadCol := entity.NewColumnVarChar(milvusPayloadField, []string{string(payload)})
	vectorCol := entity.NewColumnFloatVector(milvusVectorField, len(p.Vector), [][]float32{p.Vector})

	if _, err := s.c.Upsert(ctx, collection, "", idCol, payloadCol, vectorCol); err != nil {
		return fmt.Errorf("upsert into %q: %w", collection, err)
	}
	return nil
}

// Query runs a cosine similarity search and returns the decoded payloads
func (s *MilvusStore) Query(ctx context.Context, collection string, vector []float32, k int) ([]ScoredPoint, error) {
	sp, err := entity.NewIndexIvfFlatSearchParam(milvusSearchProbes)
	if err != nil {
		return nil, fmt.Errorf("build search params: %w", err)
	}

	results, err := s.c.Search(
		ctx,
		collection,
		nil,
		"",
		[]string{milvusIDField, milvusPayloadField},
		[]entity.Vector{entity.FloatVector(vector)},
		milvusVectorField,
		entity.COSINE,
		k,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", collection, err)
	}

	var hits []ScoredPoint
	for _, res := range results {
		ids := varcharValues(res.Fields.GetColumn(milvusIDField))
		payloads := varcharValues(res.Fields.GetColumn(milvusPayloadField))
		for i, score := range res.Scores {
			hit := ScoredPoint{Score: float64(score)}
			if i < len(ids) {
				hit.ID = ids[i]
			}
			if i < len(payloads) {
				hit.Payload = decodePayload(payloads[i])
			}
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

// Scroll enumerates payloads via a filter-less query capped at limit
func (s *MilvusStore) Scroll(ctx context.Context, collection string, limit int) ([]map[string]interface{}, error) {
	rs, err := s.c.Query(
		ctx,
		collection,
		nil,
		fmt.Sprintf(`%s != ""`, milvusIDField),
		[]string{milvusPayloadField},
		client.WithLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("scroll %q: %w", collection, err)
	}

	raw := varcharValues(rs.GetColumn(milvusPayloadField))
	payloads := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		if p := decodePayload(r); p != nil {
			payloads = append(payloads, p)
		}
	}
	return payloads, nil
}

// Close disconnects from Milvus
func (s *MilvusStore) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

func varcharValues(col entity.Column) []string {
	vc, ok := col.(*entity.ColumnVarChar)
	if !ok || vc == nil {
		return nil
	}
	return vc.Data()
}

// decodePayload tolerates undecodable payloads by dropping them; a corrupt
// point must not poison a whole scan.
func decodePayload(raw string) map[string]interface{} {
	var p map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		logrus.WithError(err).Warn("skipping undecodable payload")
		return nil
	}
	return p
}
