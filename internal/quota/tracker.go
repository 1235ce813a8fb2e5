// Package quota enforces per-source, per-day processing caps. Counters
// live in DynamoDB and are advanced with the store's native atomic ADD, so
// concurrent workers never lose updates.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/crediscope/crediscope/internal/models"
)

const (
	defaultTableName  = "DailyQuotas"
	defaultDailyLimit = 5
	retentionDays     = 7
	dateLayout        = "2006-01-02"
)

// DynamoAPI is the slice of the DynamoDB client the tracker uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Tracker gates extraction on per-source daily counters.
type Tracker struct {
	db           DynamoAPI
	table        string
	defaultLimit int
	enforce      bool
	now          func() time.Time
}

func NewTracker(db DynamoAPI) *Tracker {
	table := os.Getenv("QUOTA_TABLE_NAME")
	if table == "" {
		table = defaultTableName
	}

	limit := defaultDailyLimit
	if v := os.Getenv("QUOTA_DEFAULT_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		} else {
			slog.Warn("[QuotaTracker] Invalid QUOTA_DEFAULT_DAILY_LIMIT, using default",
				slog.String("value", v))
		}
	}

	return &Tracker{
		db:           db,
		table:        table,
		defaultLimit: limit,
		enforce:      os.Getenv("QUOTA_ENFORCEMENT") != "false",
		now:          time.Now,
	}
}

func (t *Tracker) today() string {
	return t.now().UTC().Format(dateLayout)
}

// IsAllowed reports whether the source may process one more item today.
// Always true when enforcement is disabled.
func (t *Tracker) IsAllowed(ctx context.Context, source string) (bool, error) {
	if !t.enforce {
		return true, nil
	}

	limit := t.GetLimit(ctx, source)

	rec, err := t.getRecord(ctx, source, t.today())
	if err != nil {
		return false, err
	}
	if rec == nil {
		return limit > 0, nil
	}
	return rec.Count < limit, nil
}

// IncrementCount advances the (source, today) counter in a single atomic
// upsert and records the limit in effect. Returns the new count.
func (t *Tracker) IncrementCount(ctx context.Context, source string) (int, error) {
	limit := t.GetLimit(ctx, source)
	nowUnix := t.now().Unix()

	out, err := t.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(t.table),
		Key: map[string]types.AttributeValue{
			"source_name": &types.AttributeValueMemberS{Value: source},
			"date":        &types.AttributeValueMemberS{Value: t.today()},
		},
		UpdateExpression: aws.String(
			"ADD item_count :one SET quota_limit = :lim, updated_at = :now, created_at = if_not_exists(created_at, :now)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":lim": &types.AttributeValueMemberN{Value: strconv.Itoa(limit)},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(nowUnix, 10)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, fmt.Errorf("[QuotaTracker] failed to increment %s/%s: %w", source, t.today(), err)
	}

	var rec models.DailyQuotaRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return 0, fmt.Errorf("[QuotaTracker] failed to decode counter row: %w", err)
	}

	slog.Info("[QuotaTracker] Incremented daily counter",
		slog.String("source", source),
		slog.Int("count", rec.Count),
		slog.Int("limit", rec.Limit))

	return rec.Count, nil
}

// GetLimit returns the limit stored on the source's most recent row, or
// the global default when the source has no rows.
func (t *Tracker) GetLimit(ctx context.Context, source string) int {
	out, err := t.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(t.table),
		KeyConditionExpression: aws.String("source_name = :src"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":src": &types.AttributeValueMemberS{Value: source},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		slog.Warn("[QuotaTracker] Failed to look up stored limit, using default",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return t.defaultLimit
	}
	if len(out.Items) == 0 {
		return t.defaultLimit
	}

	var rec models.DailyQuotaRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil || rec.Limit <= 0 {
		return t.defaultLimit
	}
	return rec.Limit
}

func (t *Tracker) getRecord(ctx context.Context, source, date string) (*models.DailyQuotaRecord, error) {
	out, err := t.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key: map[string]types.AttributeValue{
			"source_name": &types.AttributeValueMemberS{Value: source},
			"date":        &types.AttributeValueMemberS{Value: date},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("[QuotaTracker] failed to load counter %s/%s: %w", source, date, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var rec models.DailyQuotaRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("[QuotaTracker] failed to decode counter row: %w", err)
	}
	return &rec, nil
}
