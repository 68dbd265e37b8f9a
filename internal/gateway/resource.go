package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/azizbekh/staffdesk/internal/apiclient"
	"github.com/azizbekh/staffdesk/internal/model"
)

// Resource adapts CRUD intents to HTTP calls for one backend collection.
// Every screen used to re-derive this shape with a different URL string;
// it lives here once, parameterized over path and entity type.
type Resource[E any] struct {
	client *apiclient.Client
	path   string
}

func NewResource[E any](client *apiclient.Client, path string) *Resource[E] {
	return &Resource[E]{client: client, path: path}
}

// Path returns the collection path this gateway is bound to.
func (r *Resource[E]) Path() string {
	return r.path
}

// List fetches one page. filter, when non-empty, becomes a name_like
// substring query. The returned slice is whatever page the backend sent.
func (r *Resource[E]) List(ctx context.Context, page, limit int, filter string) ([]E, error) {
	params := map[string]string{
		"_page":  strconv.Itoa(page),
		"_limit": strconv.Itoa(limit),
	}
	if filter != "" {
		params["name_like"] = filter
	}

	var items []E
	err := r.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/" + r.path,
		Method: "GET",
		Params: params,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll fetches the whole collection unpaged. The blocked-users view
// and the statistics screen work over full lists.
func (r *Resource[E]) ListAll(ctx context.Context) ([]E, error) {
	var items []E
	err := r.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/" + r.path,
		Method: "GET",
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[E]) Get(ctx context.Context, id int64) (E, error) {
	var item E
	err := r.client.DoJSON(ctx, apiclient.Spec{
		Path:   fmt.Sprintf("/%s/%d", r.path, id),
		Method: "GET",
	}, &item)
	return item, err
}

// Create POSTs the payload as-is. Entity defaults (isActive, status,
// empty tasks) are the caller's responsibility.
func (r *Resource[E]) Create(ctx context.Context, payload E) (E, error) {
	var created E
	err := r.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/" + r.path,
		Method: "POST",
		Body:   payload,
	}, &created)
	return created, err
}

// Update PATCHes only the fields present in partial; everything else is
// left untouched by the backend.
func (r *Resource[E]) Update(ctx context.Context, id int64, partial map[string]any) (E, error) {
	var updated E
	err := r.client.DoJSON(ctx, apiclient.Spec{
		Path:   fmt.Sprintf("/%s/%d", r.path, id),
		Method: "PATCH",
		Body:   partial,
	}, &updated)
	return updated, err
}

func (r *Resource[E]) Remove(ctx context.Context, id int64) error {
	return r.client.DoJSON(ctx, apiclient.Spec{
		Path:   fmt.Sprintf("/%s/%d", r.path, id),
		Method: "DELETE",
	}, nil)
}

// SetActive is the block/unblock convenience PATCH.
func (r *Resource[E]) SetActive(ctx context.Context, id int64, isActive bool) (E, error) {
	return r.Update(ctx, id, map[string]any{"isActive": isActive})
}

// Managers, Employees and Tasks bind the three backend collections.

func Managers(client *apiclient.Client) *Resource[model.Person] {
	return NewResource[model.Person](client, "managers")
}

func Employees(client *apiclient.Client) *Resource[model.Person] {
	return NewResource[model.Person](client, "employees")
}

func Tasks(client *apiclient.Client) *Resource[model.Task] {
	return NewResource[model.Task](client, "tasks")
}

// People picks the person collection by type; the blocked-users screen
// and the attach workflow address people of either kind by type+id.
func People(client *apiclient.Client, t model.PersonType) *Resource[model.Person] {
	return NewResource[model.Person](client, model.CollectionFor(t))
}
