package similar

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// pointsAPI is the subset of the Qdrant points service the store uses.
type pointsAPI interface {
	Upsert(ctx context.Context, in *pb.UpsertPoints, opts ...grpc.CallOption) (*pb.PointsOperationResponse, error)
	Search(ctx context.Context, in *pb.SearchPoints, opts ...grpc.CallOption) (*pb.SearchResponse, error)
}

// collectionsAPI is the subset of the Qdrant collections service the store uses.
type collectionsAPI interface {
	List(ctx context.Context, in *pb.ListCollectionsRequest, opts ...grpc.CallOption) (*pb.ListCollectionsResponse, error)
	Create(ctx context.Context, in *pb.CreateCollection, opts ...grpc.CallOption) (*pb.CollectionOperationResponse, error)
}

// CaseStore owns all Qdrant operations for the case collection.
type CaseStore struct {
	conn        *grpc.ClientConn
	points      pointsAPI
	collections collectionsAPI
	collection  string
}

// NewStore connects to Qdrant at the given gRPC address.
func NewStore(addr, collection string) (*CaseStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("similar: dial qdrant %s: %w", addr, err)
	}
	return &CaseStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// NewStoreWithClients wires pre-built clients; used by tests.
func NewStoreWithClients(points pointsAPI, collections collectionsAPI, collection string) *CaseStore {
	return &CaseStore{points: points, collections: collections, collection: collection}
}

// Close closes the underlying gRPC connection.
func (s *CaseStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// EnsureCollection creates the case collection if it does not exist.
func (s *CaseStore) EnsureCollection(ctx context.Context) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("similar: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(Dims),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("similar: create collection %s: %w", s.collection, err)
	}
	return nil
}

// Upsert stores a case with its embedding.
func (s *CaseStore) Upsert(ctx context.Context, c Case, embedding []float32) error {
	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: []*pb.PointStruct{{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: c.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: embedding},
				},
			},
			Payload: casePayload(c),
		}},
	})
	if err != nil {
		return fmt.Errorf("similar: upsert case %s: %w", c.ID, err)
	}
	return nil
}

// Search runs k-NN retrieval, optionally restricted to one category.
func (s *CaseStore) Search(ctx context.Context, embedding []float32, topK int, category string) ([]Hit, error) {
	req := &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}
	if category != "" {
		req.Filter = &pb.Filter{
			Must: []*pb.Condition{{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "category",
						Match: &pb.Match{
							MatchValue: &pb.Match_Keyword{Keyword: category},
						},
					},
				},
			}},
		}
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("similar: search: %w", err)
	}

	hits := make([]Hit, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		hit := Hit{Score: r.GetScore()}
		hit.ID = r.GetId().GetUuid()
		for k, val := range r.GetPayload() {
			v := val.GetStringValue()
			switch k {
			case "symptoms":
				hit.Symptoms = v
			case "category":
				hit.Category = v
			case "issue":
				hit.Issue = v
			case "brand":
				hit.Brand = v
			case "model":
				hit.Model = v
			case "resolution":
				hit.Resolution = v
			}
		}
		hits[i] = hit
	}
	return hits, nil
}

func casePayload(c Case) map[string]*pb.Value {
	fields := map[string]string{
		"symptoms":   c.Symptoms,
		"category":   c.Category,
		"issue":      c.Issue,
		"brand":      c.Brand,
		"model":      c.Model,
		"resolution": c.Resolution,
	}
	payload := make(map[string]*pb.Value, len(fields))
	for k, v := range fields {
		payload[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: v}}
	}
	return payload
}
