package dto

// Macros is the per-serving macro breakdown shared by meals and recipes.
type Macros struct {
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
}

type LogMealRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImageData   string  `json:"image_data,omitempty"` // base64, optionally a data URL
	Macros      Macros  `json:"macros"`
	Vegetables  *int    `json:"vegetables,omitempty"`
	Proteins    *int    `json:"proteins,omitempty"`
	CarbWarning *string `json:"carb_warning,omitempty"`
}

type AnalyzeMealRequest struct {
	ImageData string `json:"image_data"`
}

type MealAnalysisResponse struct {
	Vegetables      int     `json:"vegetables"`
	Proteins        int     `json:"proteins"`
	EstimatedMacros Macros  `json:"estimated_macros"`
	CarbWarning     *string `json:"carb_warning"`
	Description     string  `json:"description"`
}
