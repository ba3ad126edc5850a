package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/notesapi/notesapi/internal/model"
)

const (
	// CreatedAtIndex is the GSI used to list notes newest first.
	// Partition key: collection (constant), sort key: created_at.
	CreatedAtIndex = "CreatedAtIndex"

	dynamoCollection = "notes"

	// dynamoTimeLayout is fixed width so that string order equals time order.
	dynamoTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// ddbNote represents the structure of a note item in DynamoDB.
type ddbNote struct {
	ID         string  `dynamodbav:"id"`
	Collection string  `dynamodbav:"collection"`
	Title      *string `dynamodbav:"title"`
	Content    *string `dynamodbav:"content"`
	UID        string  `dynamodbav:"uid"`
	CreatedAt  string  `dynamodbav:"created_at"`
	UpdatedAt  *string `dynamodbav:"updated_at,omitempty"`
}

// DynamoStore stores notes in a DynamoDB table keyed by id.
// DynamoDB has no server-side clock, so timestamps are taken from the adapter's clock.
type DynamoStore struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

// NewDynamo creates a DynamoStore over an existing client.
func NewDynamo(client DynamoAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the table is reachable.
func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tableName)})
	return err
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *DynamoStore) Close() error {
	return nil
}

// Create puts a new note item. The condition guards against id reuse.
func (s *DynamoStore) Create(ctx context.Context, uid string, fields model.NoteFields) (string, error) {
	item := ddbNote{
		ID:         newNoteID(),
		Collection: dynamoCollection,
		Title:      fields.Title,
		Content:    fields.Content,
		UID:        uid,
		CreatedAt:  s.now().Format(dynamoTimeLayout),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return "", fmt.Errorf("%w: marshal note: %w", ErrStoreWrite, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: create note: %w", ErrStoreWrite, err)
	}

	return item.ID, nil
}

// Get retrieves a note by its ID.
func (s *DynamoStore) Get(ctx context.Context, id string) (*model.Note, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            noteKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get note %s: %w", ErrStoreRead, id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNoteNotFound
	}

	note, err := unmarshalNote(out.Item)
	if err != nil {
		return nil, fmt.Errorf("%w: decode note %s: %w", ErrStoreRead, id, err)
	}
	return note, nil
}

// List queries the created_at index in descending order, following every page.
func (s *DynamoStore) List(ctx context.Context) ([]*model.Note, error) {
	keyCond := expression.Key("collection").Equal(expression.Value(dynamoCollection))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: build query: %w", ErrStoreRead, err)
	}

	notes := make([]*model.Note, 0)
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			IndexName:                 aws.String(CreatedAtIndex),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: list notes: %w", ErrStoreRead, err)
		}

		for _, item := range out.Items {
			note, err := unmarshalNote(item)
			if err != nil {
				return nil, fmt.Errorf("%w: decode note: %w", ErrStoreRead, err)
			}
			notes = append(notes, note)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return notes, nil
}

// Update overwrites a note's title and content.
// Nil fields are removed from the item; both forms read back as nil.
func (s *DynamoStore) Update(ctx context.Context, id string, fields model.NoteFields) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	update := expression.Set(expression.Name("updated_at"), expression.Value(s.now().Format(dynamoTimeLayout)))
	if fields.Title != nil {
		update = update.Set(expression.Name("title"), expression.Value(*fields.Title))
	} else {
		update = update.Remove(expression.Name("title"))
	}
	if fields.Content != nil {
		update = update.Set(expression.Name("content"), expression.Value(*fields.Content))
	} else {
		update = update.Remove(expression.Name("content"))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return fmt.Errorf("%w: build update: %w", ErrStoreWrite, err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       noteKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("%w: update note %s: %w", ErrStoreWrite, id, err)
	}

	return nil
}

// Delete removes a note.
func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 noteKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("%w: delete note %s: %w", ErrStoreWrite, id, err)
	}

	return nil
}

func noteKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalNote(item map[string]types.AttributeValue) (*model.Note, error) {
	var rec ddbNote
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(dynamoTimeLayout, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", rec.CreatedAt, err)
	}

	note := &model.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		UID:       rec.UID,
		CreatedAt: createdAt,
	}

	if rec.UpdatedAt != nil {
		updatedAt, err := time.Parse(dynamoTimeLayout, *rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at %q: %w", *rec.UpdatedAt, err)
		}
		note.UpdatedAt = &updatedAt
	}

	return note, nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

var _ NoteStore = (*DynamoStore)(nil)
