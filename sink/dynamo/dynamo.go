package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/stylealign/evaluate"
	"github.com/hupe1980/stylealign/sink"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Sink writes one item per record. Images are not stored.
type Sink struct {
	client DDBClient
	table  string
}

// New creates a DynamoDB sink for table.
func New(client DDBClient, table string) *Sink {
	return &Sink{client: client, table: table}
}

// AttemptKey returns the sort key of a record.
func AttemptKey(method string, latent, attempt int) string {
	return fmt.Sprintf("%s#%06d#%03d", method, latent, attempt)
}

func num(v float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func integer(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}

// Record implements sink.Sink.
func (s *Sink) Record(ctx context.Context, rec sink.Record) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"target":           &types.AttributeValueMemberS{Value: rec.Target},
			"attempt_key":      &types.AttributeValueMemberS{Value: AttemptKey(rec.Method, rec.Latent, rec.Attempt)},
			"method":           &types.AttributeValueMemberS{Value: rec.Method},
			"latent":           integer(int64(rec.Latent)),
			"attempt":          integer(int64(rec.Attempt)),
			"identity":         num(rec.Scores.Identity),
			"core_delta":       num(rec.Scores.Core),
			"unwanted_delta":   num(rec.Scores.Unwanted),
			"positive_delta":   num(rec.Scores.Positive),
			"changed_channels": integer(int64(rec.ChangedChannels)),
			"image_proportion": num(rec.ImageProportion),
			"core":             integer(int64(rec.Core)),
			"unwanted":         integer(int64(rec.Unwanted)),
			"positive":         integer(int64(rec.Positive)),
			"duration_ns":      integer(rec.Duration.Nanoseconds()),
			"created_at":       &types.AttributeValueMemberS{Value: created.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamo: put record %s: %w", rec.Name(), err)
	}
	return nil
}

// Records returns every stored record for target in sort-key order.
func (s *Sink) Records(ctx context.Context, target string) ([]sink.Record, error) {
	var (
		out   []sink.Record
		start map[string]types.AttributeValue
	)
	for {
		resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("target = :t"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":t": &types.AttributeValueMemberS{Value: target},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamo: query %s: %w", target, err)
		}
		for _, item := range resp.Items {
			rec, err := decode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		if len(resp.LastEvaluatedKey) == 0 {
			return out, nil
		}
		start = resp.LastEvaluatedKey
	}
}

var errAttribute = errors.New("dynamo: invalid attribute")

func decode(item map[string]types.AttributeValue) (sink.Record, error) {
	var rec sink.Record
	var err error
	str := func(name string) string {
		if err != nil {
			return ""
		}
		v, ok := item[name].(*types.AttributeValueMemberS)
		if !ok {
			err = fmt.Errorf("%w %q", errAttribute, name)
			return ""
		}
		return v.Value
	}
	number := func(name string) float64 {
		if err != nil {
			return 0
		}
		v, ok := item[name].(*types.AttributeValueMemberN)
		if !ok {
			err = fmt.Errorf("%w %q", errAttribute, name)
			return 0
		}
		f, perr := strconv.ParseFloat(v.Value, 64)
		if perr != nil {
			err = fmt.Errorf("%w %q: %w", errAttribute, name, perr)
		}
		return f
	}

	rec.Target = str("target")
	rec.Method = str("method")
	rec.Latent = int(number("latent"))
	rec.Attempt = int(number("attempt"))
	rec.Scores = evaluate.Scores{
		Identity: number("identity"),
		Core:     number("core_delta"),
		Unwanted: number("unwanted_delta"),
		Positive: number("positive_delta"),
	}
	rec.ChangedChannels = int(number("changed_channels"))
	rec.ImageProportion = number("image_proportion")
	rec.Core = int(number("core"))
	rec.Unwanted = int(number("unwanted"))
	rec.Positive = int(number("positive"))
	rec.Duration = time.Duration(number("duration_ns"))
	created := str("created_at")
	if err != nil {
		return sink.Record{}, err
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return sink.Record{}, fmt.Errorf("%w %q: %w", errAttribute, "created_at", err)
	}
	return rec, nil
}
