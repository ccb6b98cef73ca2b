package s3

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/newsclust/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ledgerItem(version, report string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"base_uri": &types.AttributeValueMemberS{Value: "s3://bucket/reports"},
		"version":  &types.AttributeValueMemberN{Value: version},
		"report":   &types.AttributeValueMemberS{Value: report},
	}
}

func TestLedgerOpenLatest(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "s3://bucket/reports")

	ddb.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.ToString(in.TableName) == "table" && !aws.ToBool(in.ScanIndexForward)
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{ledgerItem("7", "run-7.json")},
	}, nil)

	data, err := blobstore.ReadAll(ctx, ledger, blobstore.LatestName)
	require.NoError(t, err)
	assert.Equal(t, "run-7.json", string(data))

	v, err := ledger.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestLedgerOpenLatestEmpty(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	ddb.On("Query", ctx, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "uri")
	_, err := ledger.Open(ctx, blobstore.LatestName)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLedgerInvalidItem(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	ddb.On("Query", ctx, mock.Anything).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{{
			"version": &types.AttributeValueMemberS{Value: "oops"},
		}},
	}, nil)

	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "uri")
	_, err := ledger.Open(ctx, blobstore.LatestName)
	assert.Error(t, err)
}

func TestLedgerCommit(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "s3://bucket/reports")

	ddb.On("Query", ctx, mock.Anything).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{ledgerItem("2", "run-2.json")},
	}, nil)
	ddb.On("PutItem", ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		v, ok := in.Item["version"].(*types.AttributeValueMemberN)
		r, ok2 := in.Item["report"].(*types.AttributeValueMemberS)
		return ok && ok2 && v.Value == "3" && r.Value == "run-3.json" &&
			aws.ToString(in.ConditionExpression) == "attribute_not_exists(version)"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	require.NoError(t, ledger.Put(ctx, blobstore.LatestName, []byte("run-3.json")))
	ddb.AssertExpectations(t)
}

func TestLedgerCommitConflict(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	ddb.On("Query", ctx, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)
	ddb.On("PutItem", ctx, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "uri")
	err := ledger.Put(ctx, blobstore.LatestName, []byte("run-1.json"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestLedgerCommitError(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	boom := errors.New("unavailable")
	ddb.On("Query", ctx, mock.Anything).Return(nil, boom)

	ledger := NewLedgerStore(blobstore.NewMemoryStore(), ddb, "table", "uri")
	err := ledger.Put(ctx, blobstore.LatestName, []byte("run-1.json"))
	assert.ErrorIs(t, err, boom)
}

func TestLedgerPassThrough(t *testing.T) {
	ctx := context.Background()
	ddb := new(mockDDBClient)
	mem := blobstore.NewMemoryStore()
	ledger := NewLedgerStore(mem, ddb, "table", "uri")

	require.NoError(t, ledger.Put(ctx, "run-1.json", []byte("{}")))
	data, err := blobstore.ReadAll(ctx, ledger, "run-1.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	names, err := ledger.List(ctx, "run-")
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1.json"}, names)

	ddb.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}
