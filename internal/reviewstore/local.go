package reviewstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

// localStore keeps reviews in the relational reviews table. The image URL
// list is serialized as a JSON array into a text column; a NULL or empty
// column reads back as an empty slice.
type localStore struct {
	db  database.Store
	now func() time.Time
}

func newLocalStore(db database.Store) *localStore {
	return &localStore{db: db, now: time.Now}
}

// ListByProduct returns newest-first; id breaks ties within the one-second
// timestamp resolution.
func (s *localStore) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	res, err := s.db.Execute(ctx,
		`SELECT id, product_id, user_id, user_name, rating, content, image_urls, created_at
		 FROM reviews WHERE product_id = ? ORDER BY created_at DESC, id DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(res.Rows))
	for _, row := range res.Rows {
		review, err := rowToReview(row)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (s *localStore) Create(ctx context.Context, in Input) (*model.Review, error) {
	createdAt := s.now().UTC().Truncate(time.Second)

	urls := in.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode image urls: %w", err)
	}

	res, err := s.db.Execute(ctx,
		`INSERT INTO reviews (product_id, user_id, user_name, rating, content, image_urls, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ProductID, in.UserID, in.UserName, in.Rating, in.Content, string(urlsJSON),
		createdAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return &model.Review{
		ID:        strconv.FormatInt(res.InsertID, 10),
		ProductID: in.ProductID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Content:   in.Content,
		ImageURLs: urls,
		CreatedAt: createdAt,
	}, nil
}

func rowToReview(row database.Row) (model.Review, error) {
	review := model.Review{
		ID:        strconv.FormatInt(row.Int64("id"), 10),
		ProductID: row.Int64("product_id"),
		UserID:    row.Int64("user_id"),
		UserName:  row.String("user_name"),
		Rating:    int(row.Int64("rating")),
		Content:   row.String("content"),
		CreatedAt: row.Time("created_at"),
		ImageURLs: []string{},
	}
	if raw := row.String("image_urls"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &review.ImageURLs); err != nil {
			return model.Review{}, fmt.Errorf("decode image urls: %w", err)
		}
	}
	return review, nil
}
