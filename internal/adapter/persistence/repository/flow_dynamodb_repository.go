package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultFlowsTableName = "flows"
	defaultAuditTableName = "flow_audit_entries"

	auditEntryPrefix = "entry#"
	auditKeyPrefix   = "idem#"
)

type flowItem struct {
	ID         string `dynamodbav:"id"`
	CategoryID string `dynamodbav:"category_id"`
	Status     string `dynamodbav:"status"`
	Version    int64  `dynamodbav:"version"`
	UpdatedAt  string `dynamodbav:"updated_at"`
	Document   string `dynamodbav:"document"`
}

type auditEntryItem struct {
	FlowID          string `dynamodbav:"flow_id"`
	SK              string `dynamodbav:"sk"`
	EntryID         string `dynamodbav:"entry_id"`
	Sequence        int64  `dynamodbav:"sequence"`
	FromStatus      string `dynamodbav:"from_status"`
	ToStatus        string `dynamodbav:"to_status"`
	Action          string `dynamodbav:"action"`
	Actor           string `dynamodbav:"actor"`
	Timestamp       string `dynamodbav:"timestamp"`
	PayloadDigest   string `dynamodbav:"payload_digest"`
	DigestAlgorithm string `dynamodbav:"digest_algorithm"`
	IdempotencyKey  string `dynamodbav:"idempotency_key"`
}

// auditKeyItem reserves an idempotency key inside the audit partition of a flow.
type auditKeyItem struct {
	FlowID  string `dynamodbav:"flow_id"`
	SK      string `dynamodbav:"sk"`
	EntryID string `dynamodbav:"entry_id"`
}

// FlowDynamoRepository persists flows and their audit trail in DynamoDB.
//
// Table requirements:
//   - flows: PK id (string). The full aggregate is stored as a JSON document next to the
//     version used for conditional writes.
//   - flow_audit_entries: PK flow_id (string), SK sk (string). Entries use
//     sk=entry#<zero padded sequence>, idempotency keys are reserved with sk=idem#<key>.
//
// Every write is one TransactWriteItems call, so a flow never moves without its audit entries.
// The service role must not be granted UpdateItem or DeleteItem on the audit table.
type FlowDynamoRepository struct {
	ddb        *dynamodb.Client
	flowsTable string
	auditTable string
}

var (
	_ interfaces.IFlowRepository  = (*FlowDynamoRepository)(nil)
	_ interfaces.IAuditRepository = (*FlowDynamoRepository)(nil)
)

func NewFlowDynamoRepository(ddb *dynamodb.Client, flowsTable, auditTable string) *FlowDynamoRepository {
	if flowsTable == "" {
		flowsTable = getenvDefault("FLOWS_TABLE", defaultFlowsTableName)
	}
	if auditTable == "" {
		auditTable = getenvDefault("AUDIT_TABLE", defaultAuditTableName)
	}
	return &FlowDynamoRepository{ddb: ddb, flowsTable: flowsTable, auditTable: auditTable}
}

func (r *FlowDynamoRepository) Create(ctx context.Context, f entities.Flow, entry entities.AuditEntry) (entities.Flow, error) {
	put, err := r.flowPut(f)
	if err != nil {
		return entities.Flow{}, err
	}
	put.ConditionExpression = aws.String("attribute_not_exists(#id)")
	put.ExpressionAttributeNames = map[string]string{"#id": "id"}

	items := []types.TransactWriteItem{{Put: put}}
	entryItems, err := r.entryPuts([]entities.AuditEntry{entry})
	if err != nil {
		return entities.Flow{}, err
	}
	items = append(items, entryItems...)

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return entities.Flow{}, translateTransactError(err, interfaces.ErrFlowExists)
	}
	return f, nil
}

func (r *FlowDynamoRepository) GetByID(ctx context.Context, id string) (entities.Flow, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.flowsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Flow{}, err
	}
	if len(out.Item) == 0 {
		return entities.Flow{}, nil
	}

	var it flowItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Flow{}, err
	}
	return fromFlowItem(it)
}

func (r *FlowDynamoRepository) SaveTransition(ctx context.Context, f entities.Flow, expectedVersion int64, entries []entities.AuditEntry) (entities.Flow, error) {
	put, err := r.flowPut(f)
	if err != nil {
		return entities.Flow{}, err
	}
	put.ConditionExpression = aws.String("#version = :expected")
	put.ExpressionAttributeNames = map[string]string{"#version": "version"}
	put.ExpressionAttributeValues = map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}

	items := []types.TransactWriteItem{{Put: put}}
	entryItems, err := r.entryPuts(entries)
	if err != nil {
		return entities.Flow{}, err
	}
	items = append(items, entryItems...)

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return entities.Flow{}, translateTransactError(err, interfaces.ErrVersionConflict)
	}
	return f, nil
}

func (r *FlowDynamoRepository) Append(ctx context.Context, entry entities.AuditEntry) error {
	items, err := r.entryPuts([]entities.AuditEntry{entry})
	if err != nil {
		return err
	}
	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return translateTransactError(err, interfaces.ErrAuditEntryExists)
	}
	return nil
}

func (r *FlowDynamoRepository) ListByFlowID(ctx context.Context, flowID string) ([]entities.AuditEntry, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.auditTable),
		KeyConditionExpression: aws.String("flow_id = :fid AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":fid":    &types.AttributeValueMemberS{Value: flowID},
			":prefix": &types.AttributeValueMemberS{Value: auditEntryPrefix},
		},
		ConsistentRead:   aws.Bool(true),
		ScanIndexForward: aws.Bool(true),
	})

	entries := []entities.AuditEntry{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it auditEntryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			e, err := fromAuditEntryItem(it)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// EnsureTables creates both tables on demand. Meant for local DynamoDB; production tables are
// provisioned with their access policy.
func (r *FlowDynamoRepository) EnsureTables(ctx context.Context) error {
	tables := []dynamodb.CreateTableInput{
		{
			TableName:   aws.String(r.flowsTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
		},
		{
			TableName:   aws.String(r.auditTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("flow_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("flow_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
			},
		},
	}

	for i := range tables {
		in := tables[i]
		_, err := r.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName})
		if err == nil {
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return err
		}
		if _, err := r.ddb.CreateTable(ctx, &in); err != nil {
			var inUse *types.ResourceInUseException
			if !errors.As(err, &inUse) {
				return fmt.Errorf("create table %s: %w", aws.ToString(in.TableName), err)
			}
		}
	}
	return nil
}

func (r *FlowDynamoRepository) flowPut(f entities.Flow) (*types.Put, error) {
	it, err := toFlowItem(f)
	if err != nil {
		return nil, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return nil, err
	}
	return &types.Put{TableName: aws.String(r.flowsTable), Item: av}, nil
}

// entryPuts writes each entry and reserves its idempotency key; both fail if already present.
func (r *FlowDynamoRepository) entryPuts(entries []entities.AuditEntry) ([]types.TransactWriteItem, error) {
	out := make([]types.TransactWriteItem, 0, 2*len(entries))
	for _, e := range entries {
		entryAV, err := attributevalue.MarshalMap(toAuditEntryItem(e))
		if err != nil {
			return nil, err
		}
		keyAV, err := attributevalue.MarshalMap(auditKeyItem{FlowID: e.FlowID, SK: auditKeyPrefix + e.IdempotencyKey, EntryID: e.ID})
		if err != nil {
			return nil, err
		}
		for _, item := range []map[string]types.AttributeValue{entryAV, keyAV} {
			out = append(out, types.TransactWriteItem{Put: &types.Put{
				TableName:                aws.String(r.auditTable),
				Item:                     item,
				ConditionExpression:      aws.String("attribute_not_exists(#sk)"),
				ExpressionAttributeNames: map[string]string{"#sk": "sk"},
			}})
		}
	}
	return out, nil
}

// translateTransactError maps a failed condition on the first transaction item to firstItemErr
// and any other failed condition to ErrAuditEntryExists.
func translateTransactError(err error, firstItemErr error) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
			continue
		}
		if i == 0 {
			return firstItemErr
		}
		return interfaces.ErrAuditEntryExists
	}
	return err
}

func toFlowItem(f entities.Flow) (flowItem, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return flowItem{}, err
	}
	return flowItem{
		ID:         f.ID,
		CategoryID: f.CategoryID,
		Status:     string(f.Status),
		Version:    f.Version,
		UpdatedAt:  f.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Document:   string(doc),
	}, nil
}

func fromFlowItem(it flowItem) (entities.Flow, error) {
	var f entities.Flow
	if err := json.Unmarshal([]byte(it.Document), &f); err != nil {
		return entities.Flow{}, fmt.Errorf("decode flow %s: %w", it.ID, err)
	}
	f.Version = it.Version
	return f, nil
}

func toAuditEntryItem(e entities.AuditEntry) auditEntryItem {
	return auditEntryItem{
		FlowID:          e.FlowID,
		SK:              fmt.Sprintf("%s%010d", auditEntryPrefix, e.Sequence),
		EntryID:         e.ID,
		Sequence:        e.Sequence,
		FromStatus:      string(e.FromStatus),
		ToStatus:        string(e.ToStatus),
		Action:          string(e.Action),
		Actor:           e.TriggeredBy,
		Timestamp:       e.Timestamp.UTC().Format(time.RFC3339Nano),
		PayloadDigest:   e.PayloadDigest,
		DigestAlgorithm: e.DigestAlgorithm,
		IdempotencyKey:  e.IdempotencyKey,
	}
}

func fromAuditEntryItem(it auditEntryItem) (entities.AuditEntry, error) {
	ts, err := time.Parse(time.RFC3339Nano, it.Timestamp)
	if err != nil {
		return entities.AuditEntry{}, fmt.Errorf("audit entry %s: timestamp %q: %w", it.EntryID, it.Timestamp, err)
	}
	return entities.AuditEntry{
		ID:              it.EntryID,
		FlowID:          it.FlowID,
		Sequence:        it.Sequence,
		FromStatus:      entities.FlowStatus(it.FromStatus),
		ToStatus:        entities.FlowStatus(it.ToStatus),
		Action:          entities.AuditAction(it.Action),
		TriggeredBy:     it.Actor,
		Timestamp:       ts,
		PayloadDigest:   it.PayloadDigest,
		DigestAlgorithm: it.DigestAlgorithm,
		IdempotencyKey:  it.IdempotencyKey,
	}, nil
}
