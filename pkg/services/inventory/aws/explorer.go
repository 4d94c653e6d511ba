// Package aws lists EC2, S3 and RDS resources through the AWS SDK, using the
// shared credentials chain.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/rs/zerolog"
)

const (
	typeEC2Instance = "AWS::EC2::Instance"
	typeS3Bucket    = "AWS::S3::Bucket"
	typeRDSInstance = "AWS::RDS::DBInstance"
)

// s3API is the slice of the S3 client the explorer needs; the SDK ships no
// ready-made interface for this pair.
type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
}

type Explorer struct {
	region string
	ec2    ec2.DescribeInstancesAPIClient
	s3     s3API
	rds    rds.DescribeDBInstancesAPIClient
}

// NewExplorer builds an explorer for the named shared-config profile. An
// empty profile falls back to the default credentials chain.
func NewExplorer(ctx context.Context, profile string) (inventory.Explorer, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Explorer{
		region: cfg.Region,
		ec2:    ec2.NewFromConfig(cfg),
		s3:     s3.NewFromConfig(cfg),
		rds:    rds.NewFromConfig(cfg),
	}, nil
}

// ListResources gathers instances, buckets and databases. A service that
// cannot be listed is logged and skipped, mirroring the per-subscription
// behavior of the Azure explorer.
func (e *Explorer) ListResources(ctx context.Context) ([]domain.Resource, error) {
	log := zerolog.Ctx(ctx)

	var resources []domain.Resource

	instances, err := e.listInstances(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("skipping EC2 instances")
	} else {
		resources = append(resources, instances...)
	}

	buckets, err := e.listBuckets(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("skipping S3 buckets")
	} else {
		resources = append(resources, buckets...)
	}

	databases, err := e.listDatabases(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("skipping RDS instances")
	} else {
		resources = append(resources, databases...)
	}

	return resources, nil
}

func (e *Explorer) listInstances(ctx context.Context) ([]domain.Resource, error) {
	var resources []domain.Resource
	pager := ec2.NewDescribeInstancesPaginator(e.ec2, &ec2.DescribeInstancesInput{})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				tags := make(map[string]string, len(instance.Tags))
				for _, tag := range instance.Tags {
					tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
				}
				location := e.region
				if instance.Placement != nil {
					location = aws.ToString(instance.Placement.AvailabilityZone)
				}
				resources = append(resources, domain.Resource{
					Id:       aws.ToString(instance.InstanceId),
					Name:     nameFromTags(tags, aws.ToString(instance.InstanceId)),
					Type:     typeEC2Instance,
					Location: location,
					Tags:     tags,
				})
			}
		}
	}
	return resources, nil
}

func (e *Explorer) listBuckets(ctx context.Context) ([]domain.Resource, error) {
	output, err := e.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	resources := make([]domain.Resource, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		name := aws.ToString(bucket.Name)
		resource := domain.Resource{
			Id:       "arn:aws:s3:::" + name,
			Name:     name,
			Type:     typeS3Bucket,
			Location: e.region,
		}

		// GetBucketTagging fails with NoSuchTagSet on untagged buckets;
		// either way the bucket stays in the inventory.
		tagging, err := e.s3.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: bucket.Name})
		if err == nil && len(tagging.TagSet) > 0 {
			resource.Tags = make(map[string]string, len(tagging.TagSet))
			for _, tag := range tagging.TagSet {
				resource.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
			}
		}

		resources = append(resources, resource)
	}
	return resources, nil
}

func (e *Explorer) listDatabases(ctx context.Context) ([]domain.Resource, error) {
	var resources []domain.Resource
	pager := rds.NewDescribeDBInstancesPaginator(e.rds, &rds.DescribeDBInstancesInput{})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe db instances: %w", err)
		}
		for _, instance := range page.DBInstances {
			tags := make(map[string]string, len(instance.TagList))
			for _, tag := range instance.TagList {
				tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
			}
			resources = append(resources, domain.Resource{
				Id:       aws.ToString(instance.DBInstanceArn),
				Name:     aws.ToString(instance.DBInstanceIdentifier),
				Type:     typeRDSInstance,
				Location: aws.ToString(instance.AvailabilityZone),
				Tags:     tags,
			})
		}
	}
	return resources, nil
}

func nameFromTags(tags map[string]string, fallback string) string {
	if name, ok := tags["Name"]; ok && name != "" {
		return name
	}
	return fallback
}
