package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pookiey_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI. It understands the key schemas of
// the three engine tables and the expression forms the services emit, so
// conditional writes and transactions behave like the real store.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// Test hooks, invoked once around the next transaction to simulate a
	// concurrent writer sneaking in between read and commit.
	beforeTransact func()
	afterTransact  func()

	transactCalls int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func strAttr(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

func keyFor(tableName string, item map[string]types.AttributeValue) string {
	switch tableName {
	case models.UserProfilesTable:
		return strAttr(item, "userId")
	case models.InteractionsTable:
		return strAttr(item, "fromUser") + "|" + strAttr(item, "toUser")
	case models.MatchesTable:
		return strAttr(item, "user1Id") + "|" + strAttr(item, "user2Id")
	}
	panic("unknown table " + tableName)
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

// seed stores a marshaled struct directly, bypassing conditions.
func (f *fakeDynamo) seed(tableName string, value interface{}) {
	item, err := attributevalue.MarshalMap(value)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(tableName)[keyFor(tableName, item)] = item
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, value interface{}) error {
	item, err := attributevalue.MarshalMap(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(tableName)[keyFor(tableName, item)] = item
	return nil
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.table(tableName)[keyFor(tableName, key)]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := keyFor(tableName, key)
	item, ok := f.table(tableName)[k]
	if !ok {
		item = copyItem(key)
	}
	if err := applyUpdateExpression(item, updateExpression, values, names); err != nil {
		return nil, err
	}
	f.table(tableName)[k] = item
	return copyItem(item), nil
}

func (f *fakeDynamo) QueryItems(_ context.Context, tableName string, keyCondition string, values map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	return f.queryByEquality(tableName, keyCondition, values)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, tableName string, _ string, keyCondition string, values map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	return f.queryByEquality(tableName, keyCondition, values)
}

func (f *fakeDynamo) queryByEquality(tableName, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	attr, ref, err := parseEquality(keyCondition)
	if err != nil {
		return nil, err
	}
	want, ok := values[ref].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("missing value for %s", ref)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var items []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if strAttr(item, attr) == want.Value {
			items = append(items, copyItem(item))
		}
	}
	return items, nil
}

func (f *fakeDynamo) ScanItems(_ context.Context, tableName string) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		items = append(items, copyItem(item))
	}
	return items, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, writes []types.TransactWriteItem) error {
	if hook := f.beforeTransact; hook != nil {
		f.beforeTransact = nil
		hook()
	}

	f.mu.Lock()
	f.transactCalls++

	// Phase 1: evaluate every condition before touching anything, so the
	// transaction is all-or-nothing like the real store.
	reasons := make([]types.CancellationReason, len(writes))
	failed := false
	for i, write := range writes {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if !f.conditionHolds(write) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		f.mu.Unlock()
		return &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	// Phase 2: apply.
	for _, write := range writes {
		switch {
		case write.Put != nil:
			f.table(*write.Put.TableName)[keyFor(*write.Put.TableName, write.Put.Item)] = copyItem(write.Put.Item)
		case write.Update != nil:
			tableName := *write.Update.TableName
			k := keyFor(tableName, write.Update.Key)
			item, ok := f.table(tableName)[k]
			if !ok {
				item = copyItem(write.Update.Key)
			}
			if err := applyUpdateExpression(item, *write.Update.UpdateExpression, write.Update.ExpressionAttributeValues, write.Update.ExpressionAttributeNames); err != nil {
				f.mu.Unlock()
				return err
			}
			f.table(tableName)[k] = item
		}
	}
	f.mu.Unlock()

	if hook := f.afterTransact; hook != nil {
		f.afterTransact = nil
		hook()
	}
	return nil
}

func (f *fakeDynamo) conditionHolds(write types.TransactWriteItem) bool {
	switch {
	case write.Put != nil:
		if write.Put.ConditionExpression == nil {
			return true
		}
		return f.evalCondition(*write.Put.TableName, keyFor(*write.Put.TableName, write.Put.Item), *write.Put.ConditionExpression, write.Put.ExpressionAttributeValues)
	case write.Update != nil:
		if write.Update.ConditionExpression == nil {
			return true
		}
		return f.evalCondition(*write.Update.TableName, keyFor(*write.Update.TableName, write.Update.Key), *write.Update.ConditionExpression, write.Update.ExpressionAttributeValues)
	}
	return true
}

// evalCondition understands the two forms the engine emits:
// "attribute_not_exists(attr)" and "attr = :ref".
func (f *fakeDynamo) evalCondition(tableName, key, condition string, values map[string]types.AttributeValue) bool {
	item := f.table(tableName)[key]

	condition = strings.TrimSpace(condition)
	if strings.HasPrefix(condition, "attribute_not_exists(") {
		attr := strings.TrimSuffix(strings.TrimPrefix(condition, "attribute_not_exists("), ")")
		if item == nil {
			return true
		}
		_, exists := item[attr]
		return !exists
	}

	attr, ref, err := parseEquality(condition)
	if err != nil {
		panic("fakeDynamo: unsupported condition " + condition)
	}
	if item == nil {
		return false
	}
	return attrEqual(item[attr], values[ref])
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	}
	return false
}

// parseEquality splits "attr = :ref" into its parts.
func parseEquality(expr string) (attr, ref string, err error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unsupported expression %q", expr)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// applyUpdateExpression handles the SET expressions the services build:
// plain assignments ("a = :v"), an increment ("a = a + :v"), and #name
// aliases.
func applyUpdateExpression(item map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue, names map[string]string) error {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "SET ") {
		return fmt.Errorf("unsupported update expression %q", expr)
	}

	for _, assignment := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("unsupported assignment %q", assignment)
		}
		attr := strings.TrimSpace(parts[0])
		if alias, ok := names[attr]; ok {
			attr = alias
		}
		rhs := strings.TrimSpace(parts[1])

		if strings.Contains(rhs, "+") {
			// "attr + :ref" increment form.
			addParts := strings.SplitN(rhs, "+", 2)
			ref := strings.TrimSpace(addParts[1])
			current := 0
			if n, ok := item[attr].(*types.AttributeValueMemberN); ok {
				fmt.Sscanf(n.Value, "%d", &current)
			}
			delta := 0
			if n, ok := values[ref].(*types.AttributeValueMemberN); ok {
				fmt.Sscanf(n.Value, "%d", &delta)
			}
			item[attr] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", current+delta)}
			continue
		}

		value, ok := values[rhs]
		if !ok {
			return fmt.Errorf("missing value %q", rhs)
		}
		item[attr] = value
	}
	return nil
}
