// Package repository implements the record store adapter over DynamoDB.
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

	"counselor-api/internal/domain"
	"counselor-api/internal/metrics"
)

// ErrNotFound is returned when no record exists for the given identifier.
var ErrNotFound = errors.New("counselor not found")

// ErrConditionFailed is returned when a conditional update loses its
// existence check, i.e. the record vanished between read and write.
var ErrConditionFailed = errors.New("conditional check failed")

// DynamoDBAPI is the subset of the DynamoDB client used by the repository.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// CounselorRepository defines the record store operations
type CounselorRepository interface {
	Put(ctx context.Context, counselor *domain.Counselor) error
	Get(ctx context.Context, counselorID string) (*domain.Counselor, error)
	UpdateFields(ctx context.Context, counselorID string, assignments map[string]interface{}) (*domain.Counselor, error)
	ScanAll(ctx context.Context) ([]*domain.Counselor, error)
}

// counselorRepositoryImpl is the DynamoDB implementation of CounselorRepository
type counselorRepositoryImpl struct {
	db      DynamoDBAPI
	table   string
	metrics *metrics.Metrics
}

// NewCounselorRepository creates a new DynamoDB-backed CounselorRepository
func NewCounselorRepository(db DynamoDBAPI, table string, m *metrics.Metrics) CounselorRepository {
	return &counselorRepositoryImpl{
		db:      db,
		table:   table,
		metrics: m,
	}
}

func (r *counselorRepositoryImpl) key(counselorID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"counselor_id": &types.AttributeValueMemberS{Value: counselorID},
	}
}

// Put writes the full item, replacing any previous version.
func (r *counselorRepositoryImpl) Put(ctx context.Context, counselor *domain.Counselor) error {
	start := time.Now()

	item, err := attributevalue.MarshalMap(counselor)
	if err != nil {
		return fmt.Errorf("failed to marshal counselor: %w", err)
	}

	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	r.metrics.RecordStoreOperation("dynamodb", "put_item", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to put counselor %s: %w", counselor.CounselorID, err)
	}
	return nil
}

// Get performs a single point lookup by identifier.
func (r *counselorRepositoryImpl) Get(ctx context.Context, counselorID string) (*domain.Counselor, error) {
	start := time.Now()

	out, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(counselorID),
	})
	r.metrics.RecordStoreOperation("dynamodb", "get_item", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to get counselor %s: %w", counselorID, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var counselor domain.Counselor
	if err := attributevalue.UnmarshalMap(out.Item, &counselor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counselor %s: %w", counselorID, err)
	}
	return &counselor, nil
}

// UpdateFields applies the given assignments as a single conditional
// update. The condition requires the record to still exist; a lost
// condition surfaces as ErrConditionFailed. Returns the item as stored
// after the update.
func (r *counselorRepositoryImpl) UpdateFields(ctx context.Context, counselorID string, assignments map[string]interface{}) (*domain.Counselor, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("no assignments to apply for counselor %s", counselorID)
	}

	update := expression.UpdateBuilder{}
	for name, value := range assignments {
		update = update.Set(expression.Name(name), expression.Value(value))
	}
	cond := expression.AttributeExists(expression.Name("counselor_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(cond).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	start := time.Now()
	out, err := r.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(counselorID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	r.metrics.RecordStoreOperation("dynamodb", "update_item", err, time.Since(start))
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return nil, fmt.Errorf("counselor %s: %w", counselorID, ErrConditionFailed)
		}
		return nil, fmt.Errorf("failed to update counselor %s: %w", counselorID, err)
	}

	var counselor domain.Counselor
	if err := attributevalue.UnmarshalMap(out.Attributes, &counselor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated counselor %s: %w", counselorID, err)
	}
	return &counselor, nil
}

// ScanAll reads the whole table into memory. The scan follows
// LastEvaluatedKey so tables larger than one page still list fully; the
// result is a single materialized slice, not a cursor.
func (r *counselorRepositoryImpl) ScanAll(ctx context.Context) ([]*domain.Counselor, error) {
	var counselors []*domain.Counselor
	var startKey map[string]types.AttributeValue

	for {
		start := time.Now()
		out, err := r.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		r.metrics.RecordStoreOperation("dynamodb", "scan", err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("failed to scan counselors: %w", err)
		}

		var page []*domain.Counselor
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal counselors: %w", err)
		}
		counselors = append(counselors, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return counselors, nil
}
