package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

const defaultHistoryLimit = 50

type dynamoAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoDBClient keeps calculation history in a table keyed by "id".
type DynamoDBClient struct {
	svc   dynamoAPI
	table string
}

func NewDynamoDBClient(cfg aws.Config, table string) *DynamoDBClient {
	return &DynamoDBClient{svc: dynamodb.NewFromConfig(cfg), table: table}
}

// calculationItem is the DynamoDB structure for a calculation.
type calculationItem struct {
	ID        string `dynamodbav:"id"`
	Kind      string `dynamodbav:"kind"`
	Request   string `dynamodbav:"request"`
	Result    string `dynamodbav:"result"`
	Compliant bool   `dynamodbav:"compliant"`
	CreatedAt int64  `dynamodbav:"createdAt"`
}

func (it calculationItem) toDomain() (domain.Calculation, error) {
	c := domain.Calculation{
		ID:        it.ID,
		Kind:      domain.Kind(it.Kind),
		Request:   json.RawMessage(it.Request),
		CreatedAt: time.UnixMilli(it.CreatedAt).UTC(),
	}
	if err := json.Unmarshal([]byte(it.Result), &c.Result); err != nil {
		return domain.Calculation{}, fmt.Errorf("failed to decode result of %s: %w", it.ID, err)
	}
	return c, nil
}

func (c *DynamoDBClient) SaveCalculation(ctx context.Context, calc *domain.Calculation) error {
	result, err := json.Marshal(calc.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	item, err := attributevalue.MarshalMap(calculationItem{
		ID:        calc.ID,
		Kind:      string(calc.Kind),
		Request:   string(calc.Request),
		Result:    string(result),
		Compliant: calc.Result.Compliant,
		CreatedAt: calc.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal calculation: %w", err)
	}

	_, err = c.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}

func (c *DynamoDBClient) GetCalculation(ctx context.Context, id string) (domain.Calculation, error) {
	out, err := c.svc.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return domain.Calculation{}, domain.ErrNotFound
	}

	var item calculationItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return domain.Calculation{}, fmt.Errorf("failed to unmarshal calculation: %w", err)
	}
	return item.toDomain()
}

// ListCalculations scans the table and returns the newest calculations first.
// History tables stay small enough that a filtered scan is acceptable.
func (c *DynamoDBClient) ListCalculations(ctx context.Context, f domain.ListFilter) ([]domain.Calculation, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(c.table)}
	if f.Kind != "" {
		input.FilterExpression = aws.String("#k = :kind")
		input.ExpressionAttributeNames = map[string]string{"#k": "kind"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: string(f.Kind)},
		}
	}

	var items []calculationItem
	paginator := dynamodb.NewScanPaginator(c.svc, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan DynamoDB: %w", err)
		}
		var batch []calculationItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal calculations: %w", err)
		}
		items = append(items, batch...)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID > items[j].ID
	})

	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	offset := max(f.Offset, 0)
	if offset >= len(items) {
		return []domain.Calculation{}, nil
	}
	items = items[offset:min(offset+limit, len(items))]

	out := make([]domain.Calculation, 0, len(items))
	for _, it := range items {
		calc, err := it.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, calc)
	}
	return out, nil
}
