package gateway

import (
	"PlanPhotos/internal/model"
	_ "embed"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

const (
	exteriorPhotosQuery = `query PlanExteriorPhotos($clientName: String!, $planId: String!) {
  planExteriorPhotos(clientName: $clientName, planId: $planId) { src sortIndex }
}`
	interiorPhotosQuery = `query PlanInteriorPhotos($clientName: String!, $planId: String!) {
  planInteriorPhotos(clientName: $clientName, planId: $planId) { src sortIndex }
}`
	addPhotoMutation = `mutation AddPlanPhoto($clientName: String!, $planId: String!, $src: String!, $table: String!) {
  addPlanPhoto(clientName: $clientName, planId: $planId, src: $src, table: $table)
}`
	deleteExtPhotoMutation = `mutation DeletePlanExtPhoto($clientName: String!, $planId: String!, $src: String!, $sortIndex: Int!) {
  deletePlanExtPhoto(clientName: $clientName, planId: $planId, src: $src, sortIndex: $sortIndex)
}`
	deleteIntPhotoMutation = `mutation DeletePlanIntPhoto($clientName: String!, $planId: String!, $src: String!, $sortIndex: Int!) {
  deletePlanIntPhoto(clientName: $clientName, planId: $planId, src: $src, sortIndex: $sortIndex)
}`
	updateSortMutation = `mutation UpdatePlanPhotoSort($clientName: String!, $planId: String!, $sortOrder: [PhotoSortInput!]!, $table: String!) {
  updatePlanPhotoSort(clientName: $clientName, planId: $planId, sortOrder: $sortOrder, table: $table)
}`
)

var documents = map[string]string{
	"PlanExteriorPhotos":  exteriorPhotosQuery,
	"PlanInteriorPhotos":  interiorPhotosQuery,
	"AddPlanPhoto":        addPhotoMutation,
	"DeletePlanExtPhoto":  deleteExtPhotoMutation,
	"DeletePlanIntPhoto":  deleteIntPhotoMutation,
	"UpdatePlanPhotoSort": updateSortMutation,
}

// validateDocuments checks every operation against the API schema.
func validateDocuments() error {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return fmt.Errorf("gateway: load schema: %w", err)
	}
	for name, doc := range documents {
		if _, errs := gqlparser.LoadQuery(schema, doc); len(errs) > 0 {
			return fmt.Errorf("gateway: %s: %w", name, errs)
		}
	}
	return nil
}

// fetchQuery returns the list query of kind and the response field it fills.
func fetchQuery(kind model.Kind) (doc, field string, err error) {
	k, err := model.ParseKind(string(kind))
	if err != nil {
		return "", "", err
	}
	if k == model.Interior {
		return interiorPhotosQuery, "planInteriorPhotos", nil
	}
	return exteriorPhotosQuery, "planExteriorPhotos", nil
}

func deleteMutation(kind model.Kind) (string, error) {
	k, err := model.ParseKind(string(kind))
	if err != nil {
		return "", err
	}
	if k == model.Interior {
		return deleteIntPhotoMutation, nil
	}
	return deleteExtPhotoMutation, nil
}
