package provision

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

// CosmosAPI provisions databases and containers in an Azure Cosmos DB account.
type CosmosAPI struct {
	Client *azcosmos.Client
}

func NewCosmosAPI(endpoint, key string) (*CosmosAPI, error) {
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, fmt.Errorf("invalid cosmos key: %w", err)
	}

	client, err := azcosmos.NewClientWithKey(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cosmos client: %w", err)
	}

	return &CosmosAPI{Client: client}, nil
}

func (c *CosmosAPI) CreateDatabase(ctx context.Context, id string) error {
	_, err := c.Client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: id}, nil)
	return translate(err)
}

func (c *CosmosAPI) CreateContainer(ctx context.Context, database, id, partitionKeyPath string) error {
	db, err := c.Client.NewDatabase(database)
	if err != nil {
		return err
	}

	props := azcosmos.ContainerProperties{
		ID: id,
		PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
			Paths: []string{partitionKeyPath},
		},
	}
	_, err = db.CreateContainer(ctx, props, nil)
	return translate(err)
}

// translate turns a 409 Conflict into ErrExists.
func translate(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s", ErrExists, respErr.ErrorCode)
	}
	return err
}
