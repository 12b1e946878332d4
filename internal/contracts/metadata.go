package contracts

// StatusMetadata carries the display attributes callers use to render a
// contract status. Pure data, no validation.
type StatusMetadata struct {
	Status      ContractStatus `json:"status"`
	Label       string         `json:"label"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
}

var statusMetadata = map[ContractStatus]StatusMetadata{
	StatusDraft: {
		Status:      StatusDraft,
		Label:       "Draft",
		Icon:        "file-edit",
		Description: "Contract is being prepared and has not been sent to the client.",
	},
	StatusSent: {
		Status:      StatusSent,
		Label:       "Sent",
		Icon:        "send",
		Description: "Contract has been sent to the client and is awaiting review.",
	},
	StatusViewed: {
		Status:      StatusViewed,
		Label:       "Viewed",
		Icon:        "eye",
		Description: "Client has opened the contract but has not signed yet.",
	},
	StatusSigned: {
		Status:      StatusSigned,
		Label:       "Signed",
		Icon:        "pen-line",
		Description: "Client has signed. Waiting for the event to take place.",
	},
	StatusInProgress: {
		Status:      StatusInProgress,
		Label:       "In Progress",
		Icon:        "camera",
		Description: "Event is complete and the delivery countdown is running.",
	},
	StatusEditing: {
		Status:      StatusEditing,
		Label:       "Editing",
		Icon:        "wand",
		Description: "Photos are in post-processing.",
	},
	StatusReady: {
		Status:      StatusReady,
		Label:       "Ready",
		Icon:        "package-check",
		Description: "Final gallery is ready to be delivered.",
	},
	StatusDelivered: {
		Status:      StatusDelivered,
		Label:       "Delivered",
		Icon:        "check-circle",
		Description: "Gallery has been delivered to the client.",
	},
	StatusArchived: {
		Status:      StatusArchived,
		Label:       "Archived",
		Icon:        "archive",
		Description: "Contract is closed and no further changes are possible.",
	},
}

// MetadataFor returns the display metadata for a status.
func MetadataFor(s ContractStatus) (StatusMetadata, bool) {
	meta, ok := statusMetadata[s]
	return meta, ok
}

// StatusCatalog returns the metadata for every status in progression order.
func StatusCatalog() []StatusMetadata {
	catalog := make([]StatusMetadata, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		catalog = append(catalog, statusMetadata[s])
	}
	return catalog
}
