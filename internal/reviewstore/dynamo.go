package reviewstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/duallane/go-shop-api/internal/model"
)

// Fixed-width UTC layout so lexicographic order on the sort key equals
// chronological order.
const dynamoTimeLayout = "2006-01-02T15:04:05.000Z"

// dynamoReview is the table item. Partition key is the product, sort key is
// a createdAt#userId composite: the timestamp alone is not unique across
// concurrent writers to the same product. Callers only ever see the plain
// timestamp.
type dynamoReview struct {
	ProductID string   `dynamodbav:"productId"`
	SortKey   string   `dynamodbav:"createdAt#userId"`
	ReviewID  string   `dynamodbav:"reviewId"`
	UserID    int64    `dynamodbav:"userId"`
	UserName  string   `dynamodbav:"userName"`
	Rating    int      `dynamodbav:"rating"`
	Content   string   `dynamodbav:"content"`
	ImageURLs []string `dynamodbav:"imageUrls"`
	CreatedAt string   `dynamodbav:"createdAt"`
}

type dynamoStore struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

func newDynamoStore(client *dynamodb.Client, table string) *dynamoStore {
	return &dynamoStore{client: client, table: table, now: time.Now}
}

func (s *dynamoStore) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("productId = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: strconv.FormatInt(productID, 10)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}

	var items []dynamoReview
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(items))
	for _, item := range items {
		review, err := item.toModel()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (s *dynamoStore) Create(ctx context.Context, in Input) (*model.Review, error) {
	createdAt := s.now().UTC()
	stamp := createdAt.Format(dynamoTimeLayout)

	urls := in.ImageURLs
	if urls == nil {
		urls = []string{}
	}

	item := dynamoReview{
		ProductID: strconv.FormatInt(in.ProductID, 10),
		SortKey:   stamp + "#" + strconv.FormatInt(in.UserID, 10),
		ReviewID:  uuid.NewString(),
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Content:   in.Content,
		ImageURLs: urls,
		CreatedAt: stamp,
	}

	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("marshal review: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      attrs,
	}); err != nil {
		return nil, fmt.Errorf("put review: %w", err)
	}

	return &model.Review{
		ID:        item.ReviewID,
		ProductID: in.ProductID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Content:   in.Content,
		ImageURLs: urls,
		CreatedAt: createdAt,
	}, nil
}

func (r dynamoReview) toModel() (model.Review, error) {
	productID, err := strconv.ParseInt(r.ProductID, 10, 64)
	if err != nil {
		return model.Review{}, fmt.Errorf("parse product id %q: %w", r.ProductID, err)
	}
	createdAt, err := time.Parse(dynamoTimeLayout, r.CreatedAt)
	if err != nil {
		return model.Review{}, fmt.Errorf("parse created at %q: %w", r.CreatedAt, err)
	}
	urls := r.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return model.Review{
		ID:        r.ReviewID,
		ProductID: productID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Content:   r.Content,
		ImageURLs: urls,
		CreatedAt: createdAt,
	}, nil
}
