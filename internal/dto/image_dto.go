package dto

type ImageLookupRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=20,dive,required"`
}

// ImageResult has a nil Url when no image could be resolved for the name;
// a failed lookup never fails the batch.
type ImageResult struct {
	Name string  `json:"name"`
	Url  *string `json:"url"`
}

type ImageLookupResponse struct {
	Images map[string]ImageResult `json:"images"`
}
