package apidoc

import "github.com/ccbrown/wfs-fu/format"

// Component parameter names.
const (
	ParamCollectionID = "collectionId"
	ParamFeatureID    = "featureId"
	ParamLimit        = "limit"
	ParamBBox         = "bbox"
	ParamTime         = "time"
)

// Route is a static description of one operation of the API.
type Route struct {
	Path        string
	OperationID string
	Summary     string
	Tags        []string

	// The kind of document returned, which determines the response media types.
	Kind format.Kind

	// Names of component parameters, in order.
	Parameters []string
}

// Routes is the fixed route table of the API.
var Routes = []Route{
	{
		Path:        "/",
		OperationID: "getLandingPage",
		Summary:     "landing page of this API",
		Tags:        []string{"Capabilities"},
		Kind:        format.KindLandingPage,
	},
	{
		Path:        "/conformance",
		OperationID: "getRequirementsClasses",
		Summary:     "information about standards that this API conforms to",
		Tags:        []string{"Capabilities"},
		Kind:        format.KindConformance,
	},
	{
		Path:        "/collections",
		OperationID: "describeCollections",
		Summary:     "describe the feature collections in the dataset",
		Tags:        []string{"Capabilities"},
		Kind:        format.KindCollections,
	},
	{
		Path:        "/collections/{collectionId}",
		OperationID: "describeCollection",
		Summary:     "describe the {collectionId} feature collection",
		Tags:        []string{"Capabilities"},
		Kind:        format.KindCollection,
		Parameters:  []string{ParamCollectionID},
	},
	{
		Path:        "/collections/{collectionId}/items",
		OperationID: "getFeatures",
		Summary:     "retrieve features of feature collection {collectionId}",
		Tags:        []string{"Features"},
		Kind:        format.KindFeatures,
		Parameters:  []string{ParamCollectionID, ParamLimit, ParamBBox, ParamTime},
	},
	{
		Path:        "/collections/{collectionId}/items/{featureId}",
		OperationID: "getFeature",
		Summary:     "retrieve a feature; use content negotiation to request HTML or GeoJSON",
		Tags:        []string{"Features"},
		Kind:        format.KindFeatures,
		Parameters:  []string{ParamCollectionID, ParamFeatureID},
	},
}
