// File: internal/cfn/lookup.go
// Brief: Per-stack deployment status lookups against CloudFormation.

package cfn

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

// DescribeStacksAPI is the slice of the CloudFormation client the store
// needs; tests substitute a fake.
type DescribeStacksAPI interface {
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

type Store struct {
	client DescribeStacksAPI
}

func NewStore(client DescribeStacksAPI) *Store {
	return &Store{client: client}
}

// Lookup resolves live state for one stack. A stack CloudFormation has no
// record of maps to inventory.ErrNotFound; every other failure (permission,
// network, throttling) is returned as-is for the caller to classify.
func (s *Store) Lookup(ctx context.Context, backingID string) (*inventory.StackDetails, error) {
	out, err := s.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(backingID),
	})
	if err != nil {
		if isStackNotFound(err) {
			return nil, inventory.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to describe stack %s", backingID)
	}
	if len(out.Stacks) == 0 {
		return nil, inventory.ErrNotFound
	}

	st := out.Stacks[0]
	details := &inventory.StackDetails{
		Status:      inventory.ParseStatus(string(st.StackStatus)),
		StackID:     aws.ToString(st.StackId),
		Description: aws.ToString(st.Description),
		Tags:        tagMap(st.Tags),
	}
	// CloudFormation can report lifecycle strings newer than the enum;
	// keep the raw text so display does not reduce them to Unknown.
	if details.Status == inventory.StatusUnknown && st.StackStatus != "" {
		details.RawStatus = string(st.StackStatus)
	}
	if st.CreationTime != nil {
		details.CreatedAt = *st.CreationTime
	}
	if st.LastUpdatedTime != nil {
		details.UpdatedAt = *st.LastUpdatedTime
	}
	return details, nil
}

// DescribeStacks has no typed not-found error; CloudFormation reports a
// missing stack as a ValidationError whose message ends in "does not exist".
func isStackNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "ValidationError" &&
		strings.Contains(apiErr.ErrorMessage(), "does not exist")
}

func tagMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}
