// Package dynamo stores edit records in a DynamoDB table.
//
// Table schema:
//   - Partition key: target (string) - the edit target text
//   - Sort key: attempt_key (string) - "<method>#<latent>#<attempt>", zero padded
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name stylealign-records \
//	  --attribute-definitions AttributeName=target,AttributeType=S AttributeName=attempt_key,AttributeType=S \
//	  --key-schema AttributeName=target,KeyType=HASH AttributeName=attempt_key,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamo
