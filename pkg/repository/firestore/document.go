package firestore

import (
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type dependenciesDocument struct {
	People         []string `firestore:"people"`
	ITApplications []string `firestore:"it_applications"`
	Devices        []string `firestore:"devices"`
	Facilities     []string `firestore:"facilities"`
	Suppliers      []string `firestore:"suppliers"`
}

func dependenciesToDocument(d model.Dependencies) dependenciesDocument {
	n := d.Normalize()
	return dependenciesDocument{
		People:         n.People,
		ITApplications: n.ITApplications,
		Devices:        n.Devices,
		Facilities:     n.Facilities,
		Suppliers:      n.Suppliers,
	}
}

func dependenciesToModel(doc dependenciesDocument) model.Dependencies {
	return model.Dependencies{
		People:         doc.People,
		ITApplications: doc.ITApplications,
		Devices:        doc.Devices,
		Facilities:     doc.Facilities,
		Suppliers:      doc.Suppliers,
	}.Normalize()
}

type durationDocument struct {
	Kind  string  `firestore:"kind"`
	Hours float64 `firestore:"hours"`
	Text  string  `firestore:"text"`
}

func durationToDocument(d model.Duration) durationDocument {
	return durationDocument{Kind: string(d.Kind), Hours: d.Hours, Text: d.Text}
}

func durationToModel(doc durationDocument) model.Duration {
	return model.Duration{Kind: model.DurationKind(doc.Kind), Hours: doc.Hours, Text: doc.Text}
}
