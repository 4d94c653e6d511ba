// Package azure collects actual spend through the Cost Management query API.
package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/costdata"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory/azure"
)

type collector struct {
	costFactory *armcostmanagement.ClientFactory
	scope       string
}

// NewCollector builds a collector for the primary subscription of the named
// ~/.azure/config profile.
func NewCollector(_ context.Context, profile string) (costdata.Collector, error) {
	cfg, err := azure.LoadConfig(profile)
	if err != nil {
		return nil, err
	}

	subscription := cfg.Subscriptions[0]
	factory, err := armcostmanagement.NewClientFactory(cfg.Credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("create cost management client factory: %w", err)
	}

	return &collector{
		costFactory: factory,
		scope:       fmt.Sprintf("/subscriptions/%s", subscription),
	}, nil
}

func (c *collector) Collect(ctx context.Context, days int) ([]domain.SpendRecord, error) {
	client := c.costFactory.NewQueryClient()

	timeFrom := time.Now().AddDate(0, 0, -days)
	timeTo := time.Now()

	exportType := armcostmanagement.ExportTypeActualCost
	granularity := armcostmanagement.GranularityTypeDaily
	timeframe := armcostmanagement.TimeframeTypeCustom
	dimension := armcostmanagement.QueryColumnTypeDimension

	params := armcostmanagement.QueryDefinition{
		Type: &exportType,
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Name: to.Ptr("ServiceName"),
					Type: &dimension,
				},
				{
					Name: to.Ptr("ResourceLocation"),
					Type: &dimension,
				},
			},
		},
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &timeFrom,
			To:   &timeTo,
		},
	}

	result, err := client.Usage(ctx, c.scope, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}

	var records []domain.SpendRecord
	for _, row := range result.Properties.Rows {
		if len(row) < 4 {
			continue
		}
		amount, ok := row[0].(float64)
		if !ok {
			continue
		}
		currency := "USD"
		if len(row) > 4 {
			currency = fmt.Sprintf("%v", row[4])
		}
		records = append(records, domain.SpendRecord{
			Service:  fmt.Sprintf("%v", row[2]),
			Region:   fmt.Sprintf("%v", row[3]),
			Amount:   amount,
			Currency: currency,
			From:     timeFrom,
			To:       timeTo,
		})
	}
	return records, nil
}
