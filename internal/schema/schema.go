// Package schema builds the plan photo GraphQL API.
package schema

import (
	"PlanPhotos/internal/metrics"
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/service"
	"fmt"

	"github.com/graphql-go/graphql"
)

var photoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PlanPhoto",
	Fields: graphql.Fields{
		"src": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.PhotoRecord).Reference, nil
			},
		},
		"sortIndex": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.PhotoRecord).SortIndex, nil
			},
		},
	},
})

var sortInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PhotoSortInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"src":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"sortIndex": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
	},
})

func required(t graphql.Type) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
}

func planArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"clientName": required(graphql.String),
		"planId":     required(graphql.String),
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

type resolvers struct {
	photos  service.PhotoService
	metrics *metrics.Metrics
}

// instrument counts every resolution of field by outcome.
func (r *resolvers) instrument(field string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if r.metrics != nil {
			r.metrics.Operations.WithLabelValues(field, metrics.Outcome(err)).Inc()
		}
		return out, err
	}
}

func plan(p graphql.ResolveParams) (owner, planID string) {
	owner, _ = p.Args["clientName"].(string)
	planID, _ = p.Args["planId"].(string)
	return owner, planID
}

func (r *resolvers) list(kind model.Kind) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		owner, planID := plan(p)
		photos, err := r.photos.ListPhotos(p.Context, owner, planID, kind)
		if err != nil {
			return nil, err
		}
		if photos == nil {
			photos = []model.PhotoRecord{}
		}
		return photos, nil
	}
}

func (r *resolvers) add(p graphql.ResolveParams) (interface{}, error) {
	owner, planID := plan(p)
	src, _ := p.Args["src"].(string)
	table, _ := p.Args["table"].(string)

	kind, err := model.ParseKind(table)
	if err != nil {
		return false, err
	}
	if err := r.photos.AddPhoto(p.Context, owner, planID, src, kind); err != nil {
		return false, err
	}
	return true, nil
}

func (r *resolvers) delete(kind model.Kind) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		owner, planID := plan(p)
		src, _ := p.Args["src"].(string)
		sortIndex, _ := p.Args["sortIndex"].(int)

		if err := r.photos.DeletePhoto(p.Context, owner, planID, src, sortIndex, kind); err != nil {
			return false, err
		}
		return true, nil
	}
}

func (r *resolvers) updateSort(p graphql.ResolveParams) (interface{}, error) {
	owner, planID := plan(p)
	table, _ := p.Args["table"].(string)

	kind, err := model.ParseKind(table)
	if err != nil {
		return false, err
	}

	raw, _ := p.Args["sortOrder"].([]interface{})
	order := make([]model.SortEntry, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return false, fmt.Errorf("sortOrder[%d]: unexpected value %T", i, item)
		}
		src, _ := m["src"].(string)
		idx, _ := m["sortIndex"].(int)
		order = append(order, model.SortEntry{Reference: src, SortIndex: idx})
	}

	if err := r.photos.UpdateSortOrder(p.Context, owner, planID, order, kind); err != nil {
		return false, err
	}
	return true, nil
}

// New returns the schema resolving against photos. m may be nil.
func New(photos service.PhotoService, m *metrics.Metrics) (graphql.Schema, error) {
	r := &resolvers{photos: photos, metrics: m}
	photoList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(photoType)))

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"planExteriorPhotos": &graphql.Field{
				Type:    photoList,
				Args:    planArgs(nil),
				Resolve: r.instrument("planExteriorPhotos", r.list(model.Exterior)),
			},
			"planInteriorPhotos": &graphql.Field{
				Type:    photoList,
				Args:    planArgs(nil),
				Resolve: r.instrument("planInteriorPhotos", r.list(model.Interior)),
			},
		},
	})

	deleteArgs := graphql.FieldConfigArgument{
		"src":       required(graphql.String),
		"sortIndex": required(graphql.Int),
	}

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addPlanPhoto": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: planArgs(graphql.FieldConfigArgument{
					"src":   required(graphql.String),
					"table": required(graphql.String),
				}),
				Resolve: r.instrument("addPlanPhoto", r.add),
			},
			"deletePlanExtPhoto": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    planArgs(deleteArgs),
				Resolve: r.instrument("deletePlanExtPhoto", r.delete(model.Exterior)),
			},
			"deletePlanIntPhoto": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    planArgs(deleteArgs),
				Resolve: r.instrument("deletePlanIntPhoto", r.delete(model.Interior)),
			},
			"updatePlanPhotoSort": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: planArgs(graphql.FieldConfigArgument{
					"sortOrder": required(graphql.NewList(graphql.NewNonNull(sortInputType))),
					"table":     required(graphql.String),
				}),
				Resolve: r.instrument("updatePlanPhotoSort", r.updateSort),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
