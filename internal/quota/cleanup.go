package quota

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/crediscope/crediscope/internal/models"
)

// ResetAndCleanup deletes counter rows older than the retention window.
// Meant to run on a recurring schedule. Returns the number of rows removed.
func (t *Tracker) ResetAndCleanup(ctx context.Context) (int, error) {
	cutoff := t.now().UTC().AddDate(0, 0, -retentionDays).Format(dateLayout)

	input := &dynamodb.ScanInput{
		TableName:        aws.String(t.table),
		FilterExpression: aws.String("#d < :cutoff"),
		// "date" is a DynamoDB reserved word.
		ExpressionAttributeNames: map[string]string{"#d": "date"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cutoff": &types.AttributeValueMemberS{Value: cutoff},
		},
		ProjectionExpression: aws.String("source_name, #d"),
	}

	deleted := 0
	paginator := dynamodb.NewScanPaginator(t.db, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, fmt.Errorf("[QuotaTracker] cleanup scan failed: %w", err)
		}

		for _, item := range page.Items {
			_, err := t.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(t.table),
				Key: map[string]types.AttributeValue{
					"source_name": item["source_name"],
					"date":        item["date"],
				},
			})
			if err != nil {
				return deleted, fmt.Errorf("[QuotaTracker] cleanup delete failed: %w", err)
			}
			deleted++
		}
	}

	slog.Info("[QuotaTracker] Cleaned up expired counter rows",
		slog.Int("deleted", deleted),
		slog.String("cutoff", cutoff))

	return deleted, nil
}

// Stats aggregates usage per source across the retained window.
func (t *Tracker) Stats(ctx context.Context) ([]models.QuotaSourceStats, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(t.table)}

	bySource := make(map[string]*models.QuotaSourceStats)
	today := t.today()

	paginator := dynamodb.NewScanPaginator(t.db, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[QuotaTracker] stats scan failed: %w", err)
		}

		var records []models.DailyQuotaRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("[QuotaTracker] failed to decode counter rows: %w", err)
		}

		for _, rec := range records {
			stats, ok := bySource[rec.SourceName]
			if !ok {
				stats = &models.QuotaSourceStats{SourceName: rec.SourceName, Limit: t.defaultLimit}
				bySource[rec.SourceName] = stats
			}
			stats.Days++
			stats.Total += rec.Count
			if rec.Date == today {
				stats.Today = rec.Count
			}
			if rec.Limit > 0 {
				stats.Limit = rec.Limit
			}
		}
	}

	out := make([]models.QuotaSourceStats, 0, len(bySource))
	for _, stats := range bySource {
		out = append(out, *stats)
	}
	return out, nil
}
