package dynamo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/adesao-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RegistrationRepo provides typed DynamoDB operations for the registrations
// table and its per-CPF success-claim table.
type RegistrationRepo struct {
	client      *dynamodb.Client
	tableName   string
	claimsTable string
}

func NewRegistrationRepo(client *dynamodb.Client, tableName, claimsTable string) *RegistrationRepo {
	return &RegistrationRepo{client: client, tableName: tableName, claimsTable: claimsTable}
}

func (r *RegistrationRepo) Put(ctx context.Context, rec *domain.RegistrationRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RegistrationRepo) Get(ctx context.Context, registrationID string) (*domain.RegistrationRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("registration_id", registrationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}
	var rec domain.RegistrationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindSuccessByCPF returns the successful registration for the given CPF, or
// domain.ErrNotFound when none exists.
func (r *RegistrationRepo) FindSuccessByCPF(ctx context.Context, cpf string) (*domain.RegistrationRecord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("cpf-index"),
		KeyConditionExpression: aws.String("cpf = :c AND #s = :st"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":  &types.AttributeValueMemberS{Value: cpf},
			":st": &types.AttributeValueMemberS{Value: domain.StatusSuccess},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("no successful registration for cpf: %w", domain.ErrNotFound)
	}
	var rec domain.RegistrationRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateOutcome finalizes a pending record.
func (r *RegistrationRepo) UpdateOutcome(ctx context.Context, registrationID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("registration_id", registrationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// ClaimSuccess atomically claims the per-CPF success marker. The conditional
// put fails with domain.ErrConflict when another registration already holds
// it, so at most one record per CPF can ever be finalized as success.
func (r *RegistrationRepo) ClaimSuccess(ctx context.Context, cpf, registrationID string) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.claimsTable),
		Item: map[string]types.AttributeValue{
			"cpf":             &types.AttributeValueMemberS{Value: cpf},
			"registration_id": &types.AttributeValueMemberS{Value: registrationID},
			"claimed_at":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ConditionExpression: aws.String("attribute_not_exists(cpf)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("success already claimed for cpf: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// ScanPage returns a page of registrations for the admin listing.
// cursor is a base64-encoded registration_id used as ExclusiveStartKey.
// Returns the items, a next cursor (empty string when no more pages), and any error.
func (r *RegistrationRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.RegistrationRecord, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if cursor != "" {
		registrationID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("registration_id", registrationID)
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var recs []domain.RegistrationRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &recs); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["registration_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return recs, nextCursor, nil
}

func encodeCursor(registrationID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(registrationID))
}

func decodeCursor(cursor string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
