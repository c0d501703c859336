package synthetic

import "github.com/devlink/jobscout/internal/job"

type company struct {
	name string
	logo string
}

var companies = []company{
	{name: "Nubank", logo: "https://logo.clearbit.com/nubank.com.br"},
	{name: "iFood", logo: "https://logo.clearbit.com/ifood.com.br"},
	{name: "Stone", logo: "https://logo.clearbit.com/stone.com.br"},
	{name: "Mercado Livre", logo: "https://logo.clearbit.com/mercadolivre.com.br"},
	{name: "PagSeguro", logo: "https://logo.clearbit.com/pagseguro.com.br"},
	{name: "QuintoAndar", logo: "https://logo.clearbit.com/quintoandar.com.br"},
	{name: "Creditas", logo: "https://logo.clearbit.com/creditas.com"},
	{name: "Wildlife Studios", logo: "https://logo.clearbit.com/wildlifestudios.com"},
	{name: "TOTVS", logo: "https://logo.clearbit.com/totvs.com"},
	{name: "XP Inc.", logo: "https://logo.clearbit.com/xpi.com.br"},
	{name: "Loft", logo: "https://logo.clearbit.com/loft.com.br"},
	{name: "Hotmart", logo: "https://logo.clearbit.com/hotmart.com"},
}

var titlesByLevel = map[job.Level][]string{
	job.LevelJunior: {
		"Junior Frontend Developer",
		"Junior Backend Developer",
		"Junior Mobile Developer",
		"Junior QA Analyst",
		"Desenvolvedor Júnior",
	},
	job.LevelMid: {
		"Frontend Developer",
		"Backend Developer",
		"Full Stack Developer",
		"Mobile Developer",
		"DevOps Engineer",
		"Data Engineer",
	},
	job.LevelSenior: {
		"Senior Frontend Developer",
		"Senior Backend Developer",
		"Senior Full Stack Developer",
		"Senior Mobile Developer",
		"Senior DevOps Engineer",
		"Senior Data Engineer",
	},
	job.LevelLead: {
		"Tech Lead",
		"Engineering Manager",
		"Staff Engineer",
		"Principal Engineer",
	},
}

var techAreas = map[string][]string{
	"frontend": {"React", "TypeScript", "Next.js", "Vue.js", "Tailwind CSS"},
	"backend":  {"Node.js", "Python", "Java", "Golang", "Spring", "Django"},
	"mobile":   {"React Native", "Flutter", "Kotlin", "Swift"},
	"database": {"PostgreSQL", "MongoDB", "MySQL", "Redis"},
	"devops":   {"Docker", "Kubernetes", "AWS", "Terraform", "CI/CD"},
	"tools":    {"Git", "GraphQL", "REST", "Linux", "Jest"},
}

var areaNames = []string{"frontend", "backend", "mobile", "database", "devops", "tools"}

var locations = []string{
	"São Paulo, SP",
	"Remote",
	"Rio de Janeiro, RJ",
	"Belo Horizonte, MG",
	"Hybrid - São Paulo",
	"Florianópolis, SC",
	"Curitiba, PR",
	"Remote - LATAM",
	"Porto Alegre, RS",
	"Campinas, SP",
}

var salaryBandsByLevel = map[job.Level][]string{
	job.LevelJunior: {"2500-4000", "3000-4500", "3500-5000"},
	job.LevelMid:    {"5000-7500", "6000-8500", "7000-9500"},
	job.LevelSenior: {"9000-12000", "10000-14000", "12000-16000"},
	job.LevelLead:   {"14000-18000", "16000-20000", "18000-24000"},
}
