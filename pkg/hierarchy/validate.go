package hierarchy

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Validate checks the invariants of a finished region set and returns every
// violation found, joined. A nil result means the set can be packaged.
func Validate(rs []regions.Region, p *dataset.Profile) error {
	var errs []error

	errs = append(errs, uniqueness(rs)...)

	byID := make(map[int]*regions.Region, len(rs))
	for i := range rs {
		if _, dup := byID[rs[i].ID]; !dup {
			byID[rs[i].ID] = &rs[i]
		}
	}

	roots := 0
	for i := range rs {
		r := &rs[i]
		path := r.StructureIDPath

		if !r.HasColor() {
			errs = append(errs, errors.NewValidationError("rgb_triplet", r.Name, "region has no colour"))
		} else if !r.RGBTriplet.Valid() {
			errs = append(errs, errors.NewValidationError("rgb_triplet", r.RGBTriplet.String(), "channel outside [0,255] for "+r.Name))
		}

		if len(path) == 0 {
			errs = append(errs, errors.NewValidationError("structure_id_path", r.Name, "empty path"))
			continue
		}
		if len(path) > constants.MaxDepth {
			errs = append(errs, errors.NewValidationError("structure_id_path", path,
				fmt.Sprintf("%s is nested %d deep, maximum is %d", r.Name, len(path), constants.MaxDepth)))
		}
		if path[0] != p.Root.ID {
			errs = append(errs, errors.NewValidationError("structure_id_path", path,
				fmt.Sprintf("path of %s does not start at root %d", r.Name, p.Root.ID)))
		}
		if path[len(path)-1] != r.ID {
			errs = append(errs, errors.NewValidationError("structure_id_path", path,
				fmt.Sprintf("path of %s does not end with its id %d", r.Name, r.ID)))
		}

		if len(path) == 1 {
			roots++
			continue
		}
		parentID := path[len(path)-2]
		parent, ok := byID[parentID]
		if !ok {
			errs = append(errs, errors.NewValidationError("structure_id_path", path,
				fmt.Sprintf("parent id %d of %s does not exist", parentID, r.Name)))
			continue
		}
		if !slices.Equal(parent.StructureIDPath, path[:len(path)-1]) {
			errs = append(errs, errors.NewValidationError("structure_id_path", path,
				fmt.Sprintf("path of %s disagrees with path %v of its parent %s", r.Name, parent.StructureIDPath, parent.Name)))
		}
	}

	if roots != 1 {
		errs = append(errs, errors.NewValidationError("structure_id_path", roots,
			fmt.Sprintf("expected exactly one root, found %d", roots)))
	}

	return errors.Join(errs...)
}

// uniqueness reports every id or acronym shared by more than one region, in
// order of first occurrence.
func uniqueness(rs []regions.Region) []error {
	var errs []error

	idOwners := map[int][]string{}
	var idOrder []int
	acrOwners := map[string][]string{}
	var acrOrder []string

	for i := range rs {
		r := &rs[i]
		if _, seen := idOwners[r.ID]; !seen {
			idOrder = append(idOrder, r.ID)
		}
		idOwners[r.ID] = append(idOwners[r.ID], r.Name)

		if r.Acronym == "" {
			errs = append(errs, errors.NewValidationError("acronym", r.Name, "region has no acronym"))
			continue
		}
		if _, seen := acrOwners[r.Acronym]; !seen {
			acrOrder = append(acrOrder, r.Acronym)
		}
		acrOwners[r.Acronym] = append(acrOwners[r.Acronym], r.Name)
	}

	for _, id := range idOrder {
		if owners := idOwners[id]; len(owners) > 1 {
			errs = append(errs, errors.NewCollisionError("id", strconv.Itoa(id), owners))
		}
	}
	for _, a := range acrOrder {
		if owners := acrOwners[a]; len(owners) > 1 {
			errs = append(errs, errors.NewCollisionError("acronym", a, owners))
		}
	}
	return errs
}

// CatalogueConflicts reports every region whose id was not taken from the
// catalogue but equals the value of a catalogue label. Such a region would
// claim the voxels of that label.
func CatalogueConflicts(rs []regions.Region, cat *regions.Catalogue) error {
	owners := make(map[int]string, cat.Len())
	for _, l := range cat.Labels() {
		owners[l.ID] = l.Acronym
	}

	var errs []error
	for i := range rs {
		r := &rs[i]
		switch r.IDSource {
		case regions.IDSourceSynthetic, regions.IDSourceReserved, regions.IDSourceRoot:
		default:
			continue
		}
		if !cat.HasID(r.ID) {
			continue
		}
		errs = append(errs, errors.NewCollisionError("id", strconv.Itoa(r.ID),
			[]string{r.Name + " (" + r.IDSource.String() + ")", "catalogue label " + owners[r.ID]}))
	}
	return errors.Join(errs...)
}
