// Package aws collects actual spend through the Cost Explorer API.
package aws

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
)

// costExplorerAPI is the single call the collector needs from the client.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type collector struct {
	client costExplorerAPI
}

// NewCollector builds a collector for the named shared-config profile.
func NewCollector(ctx context.Context, profile string) (costdata.Collector, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &collector{client: costexplorer.NewFromConfig(cfg)}, nil
}

func (c *collector) Collect(ctx context.Context, days int) ([]domain.SpendRecord, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("REGION"),
			},
		},
	}

	result, err := c.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost and usage: %w", err)
	}

	var records []domain.SpendRecord
	for _, resultByTime := range result.ResultsByTime {
		from, err := time.Parse("2006-01-02", aws.ToString(resultByTime.TimePeriod.Start))
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time: %w", err)
		}
		to, err := time.Parse("2006-01-02", aws.ToString(resultByTime.TimePeriod.End))
		if err != nil {
			return nil, fmt.Errorf("failed to parse end time: %w", err)
		}

		for _, group := range resultByTime.Groups {
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok {
				continue
			}
			amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				continue
			}

			record := domain.SpendRecord{
				Amount:   amount,
				Currency: aws.ToString(metric.Unit),
				From:     from,
				To:       to,
			}
			if len(group.Keys) > 0 {
				record.Service = group.Keys[0]
			}
			if len(group.Keys) > 1 {
				record.Region = group.Keys[1]
			}
			records = append(records, record)
		}
	}
	return records, nil
}
