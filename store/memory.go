package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store with the same Query semantics as the
// Mongo implementation. It backs service tests; values round-trip through
// bson so field names and types match what Mongo would persist.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.M
	seq         int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]bson.M)}
}

func (s *MemoryStore) collection(name string) map[string]bson.M {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]bson.M)
		s.collections[name] = c
	}
	return c
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// normalize converts a Go value into its bson-decoded form so equality
// checks against stored documents compare like with like.
func normalize(v any) (any, error) {
	m, err := toDoc(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return m["v"], nil
}

func decodeDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func (s *MemoryStore) Create(ctx context.Context, collection string, doc any, opts ...CreateOption) (string, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	m, err := toDoc(doc)
	if err != nil {
		return "", fmt.Errorf("marshal %s doc: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := o.id
	if id == "" {
		s.seq++
		id = fmt.Sprintf("mem-%s-%d", collection, s.seq)
	}
	m["_id"] = id
	s.collection(collection)[id] = m
	return id, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	doc, ok := s.collection(collection)[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return decodeDoc(doc, out)
}

func (s *MemoryStore) Find(ctx context.Context, collection string, q Query, out any) error {
	var want any
	if q.Field != "" {
		var err error
		want, err = normalize(q.Value)
		if err != nil {
			return err
		}
	}

	s.mu.RLock()
	var matched []bson.M
	for _, doc := range s.collection(collection) {
		if q.Field != "" && !reflect.DeepEqual(doc[q.Field], want) {
			continue
		}
		matched = append(matched, doc)
	}
	s.mu.RUnlock()

	// Map iteration order is random; pin it before applying the sort.
	sort.SliceStable(matched, func(i, j int) bool {
		return fmt.Sprint(matched[i]["_id"]) < fmt.Sprint(matched[j]["_id"])
	})
	if q.Sort != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareValues(matched[i][q.Sort], matched[j][q.Sort]) < 0
			if q.Desc {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	return decodeSlice(matched, out)
}

func (s *MemoryStore) FindByIDs(ctx context.Context, collection string, ids []string, out any) error {
	s.mu.RLock()
	var matched []bson.M
	c := s.collection(collection)
	for _, id := range ids {
		if doc, ok := c[id]; ok {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()
	return decodeSlice(matched, out)
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		doc[k] = nv
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collection(collection)[id]; !ok {
		return ErrNotFound
	}
	delete(s.collection(collection), id)
	return nil
}

func decodeSlice(docs []bson.M, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("out must be a pointer to a slice, got %T", out)
	}
	sliceVal := rv.Elem()
	elemType := sliceVal.Type().Elem()

	result := reflect.MakeSlice(sliceVal.Type(), 0, len(docs))
	for _, doc := range docs {
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceVal.Set(result)
	return nil
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int32:
		if bv, ok := b.(int32); ok {
			return int(av - bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}
